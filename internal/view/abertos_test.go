package view

import (
	"testing"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

func TestBuildAbertosKeepsOnlyOpenTickets(t *testing.T) {
	chamados := ready([]domain.Chamado{
		{ID: "a", Data: "2024-01-01", Status: domain.StatusAberto},
		{ID: "b", Data: "2024-02-01", Status: domain.StatusConcluido},
		{ID: "c", Data: "2024-03-01", Status: domain.StatusAberto},
	})
	clientes := ready([]domain.Cliente{})

	vm := BuildAbertos(chamados, clientes)
	if vm.TotalAbertos != 2 {
		t.Fatalf("TotalAbertos = %d, want 2", vm.TotalAbertos)
	}
	if vm.Chamados[0].ID != "c" || vm.Chamados[1].ID != "a" {
		t.Errorf("order = %s,%s, want c,a", vm.Chamados[0].ID, vm.Chamados[1].ID)
	}
}

func TestBuildAbertosResolvesLabels(t *testing.T) {
	chamados := ready([]domain.Chamado{
		{ID: "a", Data: "2024-03-01", Status: domain.StatusAberto, ClienteID: "c1"},
		{ID: "b", Data: "2024-02-01", Status: domain.StatusAberto},
	})
	clientes := ready([]domain.Cliente{{ID: "c1", Nome: "Maria"}})

	vm := BuildAbertos(chamados, clientes)
	if vm.Chamados[0].ClienteLabel != "Maria" {
		t.Errorf("label = %q, want Maria", vm.Chamados[0].ClienteLabel)
	}
	if vm.Chamados[1].ClienteLabel != labelClienteNaoInformado {
		t.Errorf("label = %q, want %q", vm.Chamados[1].ClienteLabel, labelClienteNaoInformado)
	}
}

func TestBuildAbertosSortsRoster(t *testing.T) {
	clientes := ready([]domain.Cliente{{Nome: "Zeca"}, {Nome: "Ana"}})

	vm := BuildAbertos(ready([]domain.Chamado{}), clientes)
	if vm.Clientes[0].Nome != "Ana" || vm.Clientes[1].Nome != "Zeca" {
		t.Errorf("roster = %v", vm.Clientes)
	}
}

func TestBuildAbertosPropagatesState(t *testing.T) {
	loading := domain.DataState[[]domain.Chamado]{Status: domain.DataLoading}
	vm := BuildAbertos(loading, ready([]domain.Cliente{}))
	if !vm.Carregando {
		t.Error("loading state not propagated")
	}

	failed := domain.DataState[[]domain.Chamado]{Status: domain.DataError, Error: "sync lost"}
	vm = BuildAbertos(failed, ready([]domain.Cliente{}))
	if vm.Erro != "sync lost" {
		t.Errorf("Erro = %q, want sync lost", vm.Erro)
	}
}
