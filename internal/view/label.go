package view

import "github.com/spec-kit/chamados-dashboard/internal/domain"

const (
	labelClienteNaoInformado = "Cliente não informado"
	labelSemCliente          = "Sem cliente"
)

// clienteLabel resolves the display name for a chamado's client: the
// denormalized name snapshot wins, then a roster lookup by id, then the
// legacy free-text field, then the placeholder.
func clienteLabel(c domain.Chamado, byID map[string]domain.Cliente, placeholder string) string {
	if c.ClienteNome != "" {
		return c.ClienteNome
	}
	if c.ClienteID != "" {
		if cliente, ok := byID[c.ClienteID]; ok && cliente.Nome != "" {
			return cliente.Nome
		}
	}
	if c.Cliente != "" {
		return c.Cliente
	}
	return placeholder
}

func clientesByID(items []domain.Cliente) map[string]domain.Cliente {
	byID := make(map[string]domain.Cliente, len(items))
	for _, item := range items {
		if item.ID != "" {
			byID[item.ID] = item
		}
	}
	return byID
}
