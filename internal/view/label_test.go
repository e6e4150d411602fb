package view

import (
	"testing"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

func TestClienteLabelPriorityChain(t *testing.T) {
	roster := map[string]domain.Cliente{
		"c1": {ID: "c1", Nome: "Maria"},
	}

	tests := []struct {
		name    string
		chamado domain.Chamado
		want    string
	}{
		{
			name:    "denormalized name wins",
			chamado: domain.Chamado{ClienteNome: "Ana", ClienteID: "c1", Cliente: "legacy"},
			want:    "Ana",
		},
		{
			name:    "roster lookup by id",
			chamado: domain.Chamado{ClienteID: "c1", Cliente: "legacy"},
			want:    "Maria",
		},
		{
			name:    "deleted client falls back to legacy field",
			chamado: domain.Chamado{ClienteID: "gone", Cliente: "legacy"},
			want:    "legacy",
		},
		{
			name:    "no client data at all",
			chamado: domain.Chamado{},
			want:    labelClienteNaoInformado,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clienteLabel(tt.chamado, roster, labelClienteNaoInformado)
			if got != tt.want {
				t.Errorf("clienteLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClienteLabelDashboardPlaceholder(t *testing.T) {
	got := clienteLabel(domain.Chamado{}, nil, labelSemCliente)
	if got != labelSemCliente {
		t.Errorf("clienteLabel() = %q, want %q", got, labelSemCliente)
	}
}
