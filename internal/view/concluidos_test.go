package view

import (
	"testing"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

func ready[T any](data T) domain.DataState[T] {
	return domain.DataState[T]{Status: domain.DataReady, Data: data}
}

func concluido(id, data, clienteID, clienteNome string) domain.Chamado {
	return domain.Chamado{
		ID:          id,
		Data:        data,
		Status:      domain.StatusConcluido,
		ClienteID:   clienteID,
		ClienteNome: clienteNome,
	}
}

func TestBuildConcluidosFiltersCompose(t *testing.T) {
	chamados := ready([]domain.Chamado{
		concluido("a", "2024-01-01", "cA", "Cliente A"),
		concluido("b", "2024-01-02", "cB", "Cliente B"),
	})
	clientes := ready([]domain.Cliente{
		{ID: "cA", Nome: "Cliente A"},
		{ID: "cB", Nome: "Cliente B"},
	})

	vm := BuildConcluidos(chamados, clientes, ConcluidosFiltros{Ano: "2024", ClienteID: "cA"}, 10, 1)
	if vm.TotalFiltrados != 1 {
		t.Fatalf("TotalFiltrados = %d, want 1", vm.TotalFiltrados)
	}
	if vm.Grupos[0].Items[0].ID != "a" {
		t.Errorf("filtered item = %s, want a", vm.Grupos[0].Items[0].ID)
	}
}

func TestBuildConcluidosFilterPrecedence(t *testing.T) {
	chamados := ready([]domain.Chamado{
		concluido("a", "2024-01-01", "", ""),
		concluido("b", "2024-01-02", "", ""),
		concluido("c", "2023-06-15", "", ""),
	})
	clientes := ready([]domain.Cliente{})

	tests := []struct {
		name    string
		filtros ConcluidosFiltros
		wantIDs []string
	}{
		{"exact date wins over year and month", ConcluidosFiltros{Data: "2024-01-01", Ano: "2023", Mes: "06"}, []string{"a"}},
		{"year only", ConcluidosFiltros{Ano: "2024"}, []string{"b", "a"}},
		{"year and month", ConcluidosFiltros{Ano: "2024", Mes: "01"}, []string{"b", "a"}},
		{"no filters", ConcluidosFiltros{}, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := BuildConcluidos(chamados, clientes, tt.filtros, 10, 1)
			var got []string
			for _, grupo := range vm.Grupos {
				for _, item := range grupo.Items {
					got = append(got, item.ID)
				}
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestBuildConcluidosTextFilter(t *testing.T) {
	chamados := ready([]domain.Chamado{
		{ID: "a", Data: "2024-01-01", Status: domain.StatusConcluido, Motivo: "Instalação de rede"},
		{ID: "b", Data: "2024-01-02", Status: domain.StatusConcluido, Resolucao: "Troca de peça"},
		{ID: "c", Data: "2024-01-03", Status: domain.StatusConcluido, ClienteNome: "José"},
		{ID: "d", Data: "2024-01-04", Status: domain.StatusConcluido, Descricao: "máquina reiniciando sozinha"},
	})
	clientes := ready([]domain.Cliente{})

	tests := []struct {
		texto string
		want  string
	}{
		{"instalacao", "a"},
		{"PEÇA", "b"},
		{"jose", "c"},
		{"reiniciando", "d"},
	}

	for _, tt := range tests {
		vm := BuildConcluidos(chamados, clientes, ConcluidosFiltros{Texto: tt.texto}, 10, 1)
		if vm.TotalFiltrados != 1 {
			t.Fatalf("texto %q: TotalFiltrados = %d, want 1", tt.texto, vm.TotalFiltrados)
		}
		if vm.Grupos[0].Items[0].ID != tt.want {
			t.Errorf("texto %q matched %s, want %s", tt.texto, vm.Grupos[0].Items[0].ID, tt.want)
		}
	}
}

func TestBuildConcluidosClientFilterByFoldedName(t *testing.T) {
	// item has no id reference; match is by folded name equality
	chamados := ready([]domain.Chamado{
		{ID: "a", Data: "2024-01-01", Status: domain.StatusConcluido, Cliente: "JOÃO silva"},
		{ID: "b", Data: "2024-01-02", Status: domain.StatusConcluido, Cliente: "Outra Pessoa"},
	})
	clientes := ready([]domain.Cliente{{ID: "c1", Nome: "João Silva"}})

	vm := BuildConcluidos(chamados, clientes, ConcluidosFiltros{ClienteID: "c1"}, 10, 1)
	if vm.TotalFiltrados != 1 {
		t.Fatalf("TotalFiltrados = %d, want 1", vm.TotalFiltrados)
	}
	if vm.Grupos[0].Items[0].ID != "a" {
		t.Errorf("matched %s, want a", vm.Grupos[0].Items[0].ID)
	}
}

func TestBuildConcluidosDateOptionsAndStaleReset(t *testing.T) {
	chamados := ready([]domain.Chamado{
		concluido("a", "2024-01-01", "", ""),
		concluido("b", "2024-03-02", "", ""),
		concluido("c", "2023-06-15", "", ""),
	})
	clientes := ready([]domain.Cliente{})

	vm := BuildConcluidos(chamados, clientes, ConcluidosFiltros{}, 10, 1)
	wantAnos := []string{"2024", "2023"}
	if len(vm.AnosDisponiveis) != 2 || vm.AnosDisponiveis[0] != wantAnos[0] || vm.AnosDisponiveis[1] != wantAnos[1] {
		t.Errorf("AnosDisponiveis = %v, want %v", vm.AnosDisponiveis, wantAnos)
	}

	// stale year resets year and month
	vm = BuildConcluidos(chamados, clientes, ConcluidosFiltros{Ano: "2020", Mes: "01"}, 10, 1)
	if vm.Filtros.Ano != "" || vm.Filtros.Mes != "" {
		t.Errorf("stale year not reset: ano=%q mes=%q", vm.Filtros.Ano, vm.Filtros.Mes)
	}
	if vm.TotalFiltrados != 3 {
		t.Errorf("TotalFiltrados = %d, want 3 after reset", vm.TotalFiltrados)
	}

	// stale month resets month only
	vm = BuildConcluidos(chamados, clientes, ConcluidosFiltros{Ano: "2024", Mes: "06"}, 10, 1)
	if vm.Filtros.Ano != "2024" || vm.Filtros.Mes != "" {
		t.Errorf("stale month not reset: ano=%q mes=%q", vm.Filtros.Ano, vm.Filtros.Mes)
	}

	// month options follow the selected year
	vm = BuildConcluidos(chamados, clientes, ConcluidosFiltros{Ano: "2024"}, 10, 1)
	if len(vm.MesesDisponiveis) != 2 || vm.MesesDisponiveis[0].Valor != "01" || vm.MesesDisponiveis[1].Valor != "03" {
		t.Errorf("MesesDisponiveis = %v", vm.MesesDisponiveis)
	}
	if vm.MesesDisponiveis[0].Label != "Jan" {
		t.Errorf("month label = %q, want Jan", vm.MesesDisponiveis[0].Label)
	}
}

func TestBuildConcluidosGroupsByDateDesc(t *testing.T) {
	chamados := ready([]domain.Chamado{
		concluido("a", "2024-01-01", "", ""),
		concluido("b", "2024-01-02", "", ""),
		concluido("c", "2024-01-02", "", ""),
	})
	clientes := ready([]domain.Cliente{})

	vm := BuildConcluidos(chamados, clientes, ConcluidosFiltros{}, 10, 1)
	if len(vm.Grupos) != 2 {
		t.Fatalf("groups = %d, want 2", len(vm.Grupos))
	}
	if vm.Grupos[0].Data != "2024-01-02" || len(vm.Grupos[0].Items) != 2 {
		t.Errorf("first group = %s with %d items", vm.Grupos[0].Data, len(vm.Grupos[0].Items))
	}
	if vm.Grupos[1].Data != "2024-01-01" {
		t.Errorf("second group = %s, want 2024-01-01", vm.Grupos[1].Data)
	}
}

func TestBuildConcluidosPaginatesVisibleSet(t *testing.T) {
	items := make([]domain.Chamado, 25)
	for i := range items {
		day := i%9 + 1
		items[i] = concluido(string(rune('a'+i)), "2024-01-0"+string(rune('0'+day)), "", "")
	}
	vm := BuildConcluidos(ready(items), ready([]domain.Cliente{}), ConcluidosFiltros{}, 10, 3)
	if vm.Pagina.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", vm.Pagina.TotalPages)
	}
	if vm.TotalExibidos != 5 {
		t.Errorf("TotalExibidos = %d, want 5", vm.TotalExibidos)
	}
	if vm.TotalFiltrados != 25 {
		t.Errorf("TotalFiltrados = %d, want 25", vm.TotalFiltrados)
	}
}

func TestBuildConcluidosIgnoresOpenTickets(t *testing.T) {
	chamados := ready([]domain.Chamado{
		{ID: "a", Data: "2024-01-01", Status: domain.StatusAberto},
		concluido("b", "2024-01-02", "", ""),
	})
	vm := BuildConcluidos(chamados, ready([]domain.Cliente{}), ConcluidosFiltros{}, 10, 1)
	if vm.TotalConcluidos != 1 {
		t.Errorf("TotalConcluidos = %d, want 1", vm.TotalConcluidos)
	}
}
