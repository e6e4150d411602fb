package dto

// CriarChamadoRequest is the ticket intake form. TipoCadastro selects the
// path: "novo" opens a ticket, "antigo" backfills one already resolved.
type CriarChamadoRequest struct {
	TipoCadastro string `json:"tipoCadastro"`
	Motivo       string `json:"motivo"`
	Cliente      string `json:"cliente"`
	ClienteID    string `json:"clienteId"`
	ClienteNome  string `json:"clienteNome"`
	Data         string `json:"data"`
	Resolucao    string `json:"resolucao"`
}

// FinalizarChamadoRequest is the completion dialog.
type FinalizarChamadoRequest struct {
	Resolucao string `json:"resolucao"`
}

// AtualizarChamadoRequest is a partial edit; absent fields stay untouched.
type AtualizarChamadoRequest struct {
	Motivo      *string `json:"motivo"`
	Descricao   *string `json:"descricao"`
	Cliente     *string `json:"cliente"`
	ClienteID   *string `json:"clienteId"`
	ClienteNome *string `json:"clienteNome"`
	Data        *string `json:"data"`
	Status      *string `json:"status"`
	Resolucao   *string `json:"resolucao"`
}
