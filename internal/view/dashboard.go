package view

import (
	"sort"
	"strconv"
	"time"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// TopClientesPeriodo selects the ranking recency window.
type TopClientesPeriodo string

const (
	PeriodoTodos        TopClientesPeriodo = "todos"
	PeriodoUltimoMes    TopClientesPeriodo = "ultimoMes"
	PeriodoUltimos7Dias TopClientesPeriodo = "ultimos7Dias"
	PeriodoHoje         TopClientesPeriodo = "hoje"
)

// AnoTodos selects every year instead of a single one.
const AnoTodos = 0

// topClientesLimite caps the client ranking.
const topClientesLimite = 5

// ClienteResumo is one row of the client ranking.
type ClienteResumo struct {
	Nome  string `json:"nome"`
	Total int    `json:"total"`
}

// DashboardCards are the headline counters. Abertos/ConcluidosAtuais are
// global; the rest respect the selected year.
type DashboardCards struct {
	PrincipalLabel   string `json:"principalLabel"`
	PrincipalValor   int    `json:"principalValor"`
	PrincipalNota    string `json:"principalNota"`
	MesLabel         string `json:"mesLabel"`
	MesValor         int    `json:"mesValor"`
	TotalAnoLabel    string `json:"totalAnoLabel"`
	TotalAnoValor    int    `json:"totalAnoValor"`
	TotalHoje        int    `json:"totalHoje"`
	AbertosHoje      int    `json:"abertosHoje"`
	ConcluidosHoje   int    `json:"concluidosHoje"`
	AbertosAtuais    int    `json:"abertosAtuais"`
	ConcluidosAtuais int    `json:"concluidosAtuais"`
}

// GraficoDiario is the per-day histogram for one month, sized to that
// month's actual day count.
type GraficoDiario struct {
	Ano         int    `json:"ano"`
	Mes         int    `json:"mes"`
	MesLabel    string `json:"mesLabel"`
	Labels      []int  `json:"labels"`
	Totais      []int  `json:"totais"`
	TotalMes    int    `json:"totalMes"`
	SemChamados bool   `json:"semChamados"`
}

// DashboardFiltros are the dashboard's selections; zero values resolve to
// sensible defaults against the available years.
type DashboardFiltros struct {
	Ano       int
	AnoMensal int
	Periodo   TopClientesPeriodo
	AnoDiario int
	MesDiario int
}

// DashboardViewModel is the aggregated dashboard page.
type DashboardViewModel struct {
	Carregando           bool               `json:"carregando"`
	Erro                 string             `json:"erro,omitempty"`
	AnoSelecionado       int                `json:"anoSelecionado"`
	AnoSelecionadoLabel  string             `json:"anoSelecionadoLabel"`
	AnosDisponiveis      []int              `json:"anosDisponiveis"`
	AnoMensalSelecionado int                `json:"anoMensalSelecionado"`
	Cards                DashboardCards     `json:"cards"`
	TotaisPorMes         []int              `json:"totaisPorMes"`
	TotalPeriodoMensal   int                `json:"totalPeriodoMensal"`
	TopClientes          []ClienteResumo    `json:"topClientes"`
	TopClientesPeriodo   TopClientesPeriodo `json:"topClientesPeriodo"`
	GraficoDiario        GraficoDiario      `json:"graficoDiario"`
}

// BuildDashboard derives the dashboard view model. hoje is the current ISO
// date, passed in so aggregation stays a pure function.
func BuildDashboard(
	chamados domain.DataState[[]domain.Chamado],
	clientes domain.DataState[[]domain.Cliente],
	filtros DashboardFiltros,
	hoje string,
) DashboardViewModel {
	items := chamados.Data
	anos := availableYears(items, hoje)
	anoPrincipal := resolveAno(filtros.Ano, anos)
	anoMensal := resolveAnoMensal(filtros.AnoMensal, anos, currentYear(hoje))
	anoDiario, mesDiario := resolveDiario(filtros.AnoDiario, filtros.MesDiario, anos)
	periodo := filtros.Periodo
	switch periodo {
	case PeriodoHoje, PeriodoUltimos7Dias, PeriodoUltimoMes, PeriodoTodos:
	default:
		periodo = PeriodoTodos
	}

	byID := clientesByID(clientes.Data)

	totaisPorMes, totalPeriodo := monthlyTotals(items, anoMensal)

	label := "Todos"
	if anoPrincipal != AnoTodos {
		label = strconv.Itoa(anoPrincipal)
	}

	erro := chamados.Error
	if erro == "" {
		erro = clientes.Error
	}
	return DashboardViewModel{
		Carregando:           chamados.Loading() || clientes.Loading(),
		Erro:                 erro,
		AnoSelecionado:       anoPrincipal,
		AnoSelecionadoLabel:  label,
		AnosDisponiveis:      anos,
		AnoMensalSelecionado: anoMensal,
		Cards:                buildCards(items, anoPrincipal, hoje),
		TotaisPorMes:         totaisPorMes,
		TotalPeriodoMensal:   totalPeriodo,
		TopClientes:          topClientes(items, byID, anoPrincipal, periodo, hoje),
		TopClientesPeriodo:   periodo,
		GraficoDiario:        dailyTotals(items, anoDiario, mesDiario),
	}
}

// buildCards runs a single pass over the full set: global open/completed
// counts plus year-scoped total, current-month and today counters.
func buildCards(items []domain.Chamado, anoSelecionado int, hoje string) DashboardCards {
	anoAtual, mesAtual, diaAtual := splitDate(hoje)

	cards := DashboardCards{}
	for i := range items {
		item := &items[i]
		if item.Status == domain.StatusAberto {
			cards.AbertosAtuais++
		}
		if item.Status == domain.StatusConcluido {
			cards.ConcluidosAtuais++
		}

		if !isDataISO(item.Data) {
			continue
		}
		ano, mes, dia := splitDate(item.Data)
		if anoSelecionado != AnoTodos && ano != anoSelecionado {
			continue
		}

		cards.TotalAnoValor++
		if mes == mesAtual {
			cards.MesValor++
		}
		if mes == mesAtual && dia == diaAtual {
			cards.TotalHoje++
			if item.Status == domain.StatusAberto {
				cards.AbertosHoje++
			}
			if item.Status == domain.StatusConcluido {
				cards.ConcluidosHoje++
			}
		}
	}

	sufixoAno := "todos os anos"
	if anoSelecionado != AnoTodos {
		sufixoAno = strconv.Itoa(anoSelecionado)
	}
	anoEhAtual := anoSelecionado == AnoTodos || anoSelecionado == anoAtual
	if anoEhAtual {
		cards.PrincipalLabel = "Chamados hoje"
		cards.PrincipalValor = cards.TotalHoje
		cards.PrincipalNota = strconv.Itoa(cards.AbertosHoje) + " abertos / " + strconv.Itoa(cards.ConcluidosHoje) + " concluidos"
	} else {
		cards.PrincipalLabel = "Chamados no ano"
		cards.PrincipalValor = cards.TotalAnoValor
		cards.PrincipalNota = "Ano " + sufixoAno
	}
	cards.MesLabel = "Chamados em " + mesesAbrev[mesAtual-1] + " (" + sufixoAno + ")"
	if anoSelecionado == AnoTodos {
		cards.TotalAnoLabel = "Total geral"
	} else {
		cards.TotalAnoLabel = "Total do ano selecionado"
	}
	return cards
}

func monthlyTotals(items []domain.Chamado, ano int) ([]int, int) {
	totais := make([]int, 12)
	total := 0
	prefix := strconv.Itoa(ano) + "-"
	for _, item := range items {
		if !isDataISO(item.Data) {
			continue
		}
		if ano != AnoTodos && item.Data[:len(prefix)] != prefix {
			continue
		}
		mes, err := strconv.Atoi(item.Data[5:7])
		if err != nil || mes < 1 || mes > 12 {
			continue
		}
		totais[mes-1]++
		total++
	}
	return totais, total
}

func topClientes(
	items []domain.Chamado,
	byID map[string]domain.Cliente,
	ano int,
	periodo TopClientesPeriodo,
	hoje string,
) []ClienteResumo {
	inicio7Dias := shiftDate(hoje, -6)
	inicio30Dias := shiftDate(hoje, -29)
	prefix := strconv.Itoa(ano) + "-"

	type entry struct {
		nome  string
		total int
	}
	ranking := make(map[string]*entry)
	for _, item := range items {
		if !isDataISO(item.Data) {
			continue
		}
		if ano != AnoTodos && item.Data[:len(prefix)] != prefix {
			continue
		}
		if !matchPeriodo(item.Data, periodo, hoje, inicio7Dias, inicio30Dias) {
			continue
		}

		nome := clienteLabel(item, byID, labelSemCliente)
		key := "nome:" + nome
		if item.ClienteID != "" {
			key = "id:" + item.ClienteID
		}
		if ranking[key] == nil {
			ranking[key] = &entry{nome: nome}
		}
		ranking[key].total++
	}

	resumos := make([]ClienteResumo, 0, len(ranking))
	for _, e := range ranking {
		resumos = append(resumos, ClienteResumo{Nome: e.nome, Total: e.total})
	}
	sort.SliceStable(resumos, func(i, j int) bool {
		if resumos[i].Total != resumos[j].Total {
			return resumos[i].Total > resumos[j].Total
		}
		return foldText(resumos[i].Nome) < foldText(resumos[j].Nome)
	})
	if len(resumos) > topClientesLimite {
		resumos = resumos[:topClientesLimite]
	}
	return resumos
}

func matchPeriodo(data string, periodo TopClientesPeriodo, hoje, inicio7Dias, inicio30Dias string) bool {
	switch periodo {
	case PeriodoHoje:
		return data == hoje
	case PeriodoUltimos7Dias:
		return data >= inicio7Dias && data <= hoje
	case PeriodoUltimoMes:
		return data >= inicio30Dias && data <= hoje
	default:
		return true
	}
}

func dailyTotals(items []domain.Chamado, ano, mes int) GraficoDiario {
	totalDias := daysInMonth(ano, mes)
	labels := make([]int, totalDias)
	totais := make([]int, totalDias)
	for dia := 1; dia <= totalDias; dia++ {
		labels[dia-1] = dia
	}

	totalMes := 0
	for _, item := range items {
		if !isDataISO(item.Data) {
			continue
		}
		itemAno, itemMes, itemDia := splitDate(item.Data)
		if itemAno != ano || itemMes != mes {
			continue
		}
		if itemDia < 1 || itemDia > totalDias {
			continue
		}
		totais[itemDia-1]++
		totalMes++
	}

	return GraficoDiario{
		Ano:         ano,
		Mes:         mes,
		MesLabel:    mesesAbrev[mes-1],
		Labels:      labels,
		Totais:      totais,
		TotalMes:    totalMes,
		SemChamados: totalMes == 0,
	}
}

// availableYears lists distinct years descending, defaulting to the current
// year when the set is empty.
func availableYears(items []domain.Chamado, hoje string) []int {
	years := make(map[int]struct{})
	for _, item := range items {
		if !isDataISO(item.Data) {
			continue
		}
		ano, _, _ := splitDate(item.Data)
		years[ano] = struct{}{}
	}

	sorted := make([]int, 0, len(years))
	for year := range years {
		sorted = append(sorted, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if len(sorted) == 0 {
		return []int{currentYear(hoje)}
	}
	return sorted
}

func resolveAno(ano int, anos []int) int {
	if ano == AnoTodos {
		return AnoTodos
	}
	for _, candidate := range anos {
		if candidate == ano {
			return ano
		}
	}
	return anos[0]
}

func resolveAnoMensal(ano int, anos []int, anoAtual int) int {
	for _, candidate := range anos {
		if candidate == ano {
			return ano
		}
	}
	for _, candidate := range anos {
		if candidate == anoAtual {
			return anoAtual
		}
	}
	return anos[0]
}

func resolveDiario(ano, mes int, anos []int) (int, int) {
	resolvido := resolveAno(ano, anos)
	if resolvido == AnoTodos {
		resolvido = anos[0]
	}
	if mes < 1 {
		mes = 1
	}
	if mes > 12 {
		mes = 12
	}
	return resolvido, mes
}

func daysInMonth(ano, mes int) int {
	return time.Date(ano, time.Month(mes)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func shiftDate(data string, deltaDias int) string {
	t, err := time.Parse("2006-01-02", data)
	if err != nil {
		return data
	}
	return t.AddDate(0, 0, deltaDias).Format("2006-01-02")
}

func splitDate(data string) (ano, mes, dia int) {
	if len(data) < 10 {
		return 0, 0, 0
	}
	ano, _ = strconv.Atoi(data[:4])
	mes, _ = strconv.Atoi(data[5:7])
	dia, _ = strconv.Atoi(data[8:10])
	return ano, mes, dia
}

func currentYear(hoje string) int {
	ano, _, _ := splitDate(hoje)
	return ano
}

// CurrentYearMonth extracts the year and month of an ISO date.
func CurrentYearMonth(hoje string) (int, int) {
	ano, mes, _ := splitDate(hoje)
	return ano, mes
}

// Hoje formats now as the local ISO calendar date.
func Hoje() string {
	return time.Now().Format("2006-01-02")
}
