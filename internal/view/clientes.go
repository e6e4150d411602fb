package view

import "github.com/spec-kit/chamados-dashboard/internal/domain"

// ClientesViewModel is the client roster page.
type ClientesViewModel struct {
	Carregando bool             `json:"carregando"`
	Erro       string           `json:"erro,omitempty"`
	Clientes   []domain.Cliente `json:"clientes"`
	Total      int              `json:"total"`
}

// BuildClientes derives the client roster view model.
func BuildClientes(clientes domain.DataState[[]domain.Cliente]) ClientesViewModel {
	roster := sortClientesByNome(clientes.Data)
	return ClientesViewModel{
		Carregando: clientes.Loading(),
		Erro:       clientes.Error,
		Clientes:   roster,
		Total:      len(roster),
	}
}
