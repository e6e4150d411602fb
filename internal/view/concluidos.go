package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// ConcluidosFiltros are the completed-ticket page filter selections. An exact
// Data wins over the Ano/Mes pair; all active predicates compose by AND.
type ConcluidosFiltros struct {
	Ano       string `json:"ano"`
	Mes       string `json:"mes"`
	Data      string `json:"data"`
	ClienteID string `json:"clienteId"`
	Texto     string `json:"texto"`
}

// MesOption is a selectable month with its pt-BR label.
type MesOption struct {
	Valor string `json:"valor"`
	Label string `json:"label"`
}

// GrupoConcluidos is one date's worth of visible completed tickets.
type GrupoConcluidos struct {
	Data  string        `json:"data"`
	Items []ChamadoItem `json:"items"`
}

// ConcluidosViewModel is the completed-ticket page: filtered, paginated and
// grouped by date.
type ConcluidosViewModel struct {
	Carregando       bool               `json:"carregando"`
	Erro             string             `json:"erro,omitempty"`
	Clientes         []domain.Cliente   `json:"clientes"`
	Grupos           []GrupoConcluidos  `json:"grupos"`
	Filtros          ConcluidosFiltros  `json:"filtros"`
	AnosDisponiveis  []string           `json:"anosDisponiveis"`
	MesesDisponiveis []MesOption        `json:"mesesDisponiveis"`
	Pagina           Pagination         `json:"pagina"`
	TotalConcluidos  int                `json:"totalConcluidos"`
	TotalFiltrados   int                `json:"totalFiltrados"`
	TotalExibidos    int                `json:"totalExibidos"`
}

// BuildConcluidos derives the completed-ticket page view model.
func BuildConcluidos(
	chamados domain.DataState[[]domain.Chamado],
	clientes domain.DataState[[]domain.Cliente],
	filtros ConcluidosFiltros,
	pageSize, page int,
) ConcluidosViewModel {
	roster := sortClientesByNome(clientes.Data)
	byID := clientesByID(roster)

	concluidos := make([]domain.Chamado, 0, len(chamados.Data))
	for _, item := range chamados.Data {
		if item.Concluido() {
			concluidos = append(concluidos, item)
		}
	}

	items := make([]ChamadoItem, 0, len(concluidos))
	for _, item := range sortChamadosDataDesc(concluidos, true) {
		items = append(items, ChamadoItem{
			Chamado:      item,
			ClienteLabel: clienteLabel(item, byID, labelClienteNaoInformado),
		})
	}

	anos, mesesPorAno := dateOptions(items)
	filtros = resetStaleSelections(filtros, anos, mesesPorAno)

	filtrados := filterConcluidos(items, filtros, byID)
	pagina := Paginate(len(filtrados), pageSize, page)
	visiveis := pageSlice(filtrados, pagina)

	erro := chamados.Error
	if erro == "" {
		erro = clientes.Error
	}
	return ConcluidosViewModel{
		Carregando:       chamados.Loading() || clientes.Loading(),
		Erro:             erro,
		Clientes:         roster,
		Grupos:           groupByData(visiveis),
		Filtros:          filtros,
		AnosDisponiveis:  anos,
		MesesDisponiveis: mesesPorAno[filtros.Ano],
		Pagina:           pagina,
		TotalConcluidos:  len(items),
		TotalFiltrados:   len(filtrados),
		TotalExibidos:    len(visiveis),
	}
}

func filterConcluidos(items []ChamadoItem, filtros ConcluidosFiltros, byID map[string]domain.Cliente) []ChamadoItem {
	textoBusca := foldText(strings.TrimSpace(filtros.Texto))
	clienteFiltroNome := ""
	if filtros.ClienteID != "" {
		clienteFiltroNome = foldText(byID[filtros.ClienteID].Nome)
	}

	out := make([]ChamadoItem, 0, len(items))
	for _, item := range items {
		if filtros.Data != "" {
			if item.Data != filtros.Data {
				continue
			}
		} else {
			if filtros.Ano != "" && !strings.HasPrefix(item.Data, filtros.Ano+"-") {
				continue
			}
			if filtros.Mes != "" && mesOf(item.Data) != filtros.Mes {
				continue
			}
		}

		if filtros.ClienteID != "" {
			if item.ClienteID != "" {
				if item.ClienteID != filtros.ClienteID {
					continue
				}
			} else {
				if clienteFiltroNome == "" {
					continue
				}
				nomeItem := item.ClienteLabel
				if nomeItem == "" {
					nomeItem = item.Cliente
				}
				if foldText(nomeItem) != clienteFiltroNome {
					continue
				}
			}
		}

		if textoBusca != "" {
			alvo := foldText(item.Motivo + " " + item.Descricao + " " + item.Resolucao + " " + item.ClienteLabel)
			if !strings.Contains(alvo, textoBusca) {
				continue
			}
		}

		out = append(out, item)
	}
	return out
}

// dateOptions derives the selectable years (descending) and the months
// present per year from the unfiltered completed set.
func dateOptions(items []ChamadoItem) ([]string, map[string][]MesOption) {
	anosSet := make(map[string]struct{})
	mesesPorAno := make(map[string]map[string]struct{})

	for _, item := range items {
		if !isDataISO(item.Data) {
			continue
		}
		ano := item.Data[:4]
		mes := item.Data[5:7]
		anosSet[ano] = struct{}{}
		if mesesPorAno[ano] == nil {
			mesesPorAno[ano] = make(map[string]struct{})
		}
		mesesPorAno[ano][mes] = struct{}{}
	}

	anos := make([]string, 0, len(anosSet))
	for ano := range anosSet {
		anos = append(anos, ano)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(anos)))

	opcoes := make(map[string][]MesOption, len(mesesPorAno))
	for ano, meses := range mesesPorAno {
		valores := make([]string, 0, len(meses))
		for mes := range meses {
			valores = append(valores, mes)
		}
		sort.Strings(valores)
		options := make([]MesOption, 0, len(valores))
		for _, valor := range valores {
			options = append(options, MesOption{Valor: valor, Label: mesLabel(valor)})
		}
		opcoes[ano] = options
	}
	return anos, opcoes
}

// resetStaleSelections drops selections that no longer exist in the data: a
// missing year resets both year and month, a missing month resets the month.
func resetStaleSelections(filtros ConcluidosFiltros, anos []string, mesesPorAno map[string][]MesOption) ConcluidosFiltros {
	if filtros.Ano != "" && !containsString(anos, filtros.Ano) {
		filtros.Ano = ""
		filtros.Mes = ""
		return filtros
	}
	if filtros.Ano != "" && filtros.Mes != "" {
		for _, option := range mesesPorAno[filtros.Ano] {
			if option.Valor == filtros.Mes {
				return filtros
			}
		}
		filtros.Mes = ""
	}
	return filtros
}

func groupByData(items []ChamadoItem) []GrupoConcluidos {
	grouped := make(map[string][]ChamadoItem)
	order := make([]string, 0)
	for _, item := range items {
		data := item.Data
		if data == "" {
			data = "Sem data"
		}
		if _, seen := grouped[data]; !seen {
			order = append(order, data)
		}
		grouped[data] = append(grouped[data], item)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	grupos := make([]GrupoConcluidos, 0, len(order))
	for _, data := range order {
		grupos = append(grupos, GrupoConcluidos{Data: data, Items: grouped[data]})
	}
	return grupos
}

func mesOf(data string) string {
	if len(data) < 7 {
		return ""
	}
	return data[5:7]
}

func mesLabel(mes string) string {
	n, err := strconv.Atoi(mes)
	if err != nil || n < 1 || n > 12 {
		return mes
	}
	return mesesAbrev[n-1]
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
