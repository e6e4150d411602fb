package view

import "github.com/spec-kit/chamados-dashboard/internal/domain"

// AbertosViewModel is the open-ticket intake page: the open list newest
// first plus the client roster feeding the intake form.
type AbertosViewModel struct {
	Carregando   bool             `json:"carregando"`
	Erro         string           `json:"erro,omitempty"`
	Chamados     []ChamadoItem    `json:"chamados"`
	Clientes     []domain.Cliente `json:"clientes"`
	TotalAbertos int              `json:"totalAbertos"`
}

// BuildAbertos derives the open-ticket page view model.
func BuildAbertos(chamados domain.DataState[[]domain.Chamado], clientes domain.DataState[[]domain.Cliente]) AbertosViewModel {
	roster := sortClientesByNome(clientes.Data)
	byID := clientesByID(roster)

	abertos := make([]domain.Chamado, 0, len(chamados.Data))
	for _, item := range chamados.Data {
		if item.Aberto() {
			abertos = append(abertos, item)
		}
	}

	items := make([]ChamadoItem, 0, len(abertos))
	for _, item := range sortChamadosDataDesc(abertos, false) {
		items = append(items, ChamadoItem{
			Chamado:      item,
			ClienteLabel: clienteLabel(item, byID, labelClienteNaoInformado),
		})
	}

	erro := chamados.Error
	if erro == "" {
		erro = clientes.Error
	}
	return AbertosViewModel{
		Carregando:   chamados.Loading() || clientes.Loading(),
		Erro:         erro,
		Chamados:     items,
		Clientes:     roster,
		TotalAbertos: len(items),
	}
}
