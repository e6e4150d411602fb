package domain

import "time"

// StatusChamado enumerates lifecycle states for chamados.
type StatusChamado string

const (
	StatusAberto    StatusChamado = "aberto"
	StatusConcluido StatusChamado = "concluido"
)

// TipoCadastro records which intake path created the chamado. It is an
// immutable provenance tag: "novo" entries start open, "antigo" entries are
// registered already resolved.
type TipoCadastro string

const (
	TipoNovo   TipoCadastro = "novo"
	TipoAntigo TipoCadastro = "antigo"
)

// Chamado is the support-request record. Cliente and Descricao hold legacy
// free-text carried over from imported records; ClienteID/ClienteNome are the
// current soft reference plus display-name snapshot. Data is an ISO calendar
// date (YYYY-MM-DD) kept as a string so filters and aggregation can compare
// by prefix.
type Chamado struct {
	ID           string        `json:"id"`
	Motivo       string        `json:"motivo"`
	Descricao    string        `json:"descricao,omitempty"`
	Cliente      string        `json:"cliente,omitempty"`
	ClienteID    string        `json:"clienteId,omitempty"`
	ClienteNome  string        `json:"clienteNome,omitempty"`
	Data         string        `json:"data"`
	Status       StatusChamado `json:"status"`
	Resolucao    string        `json:"resolucao"`
	CriadoEm     *time.Time    `json:"criadoEm"`
	ConcluidoEm  *time.Time    `json:"concluidoEm"`
	TipoCadastro TipoCadastro  `json:"tipoCadastro"`
}

// Aberto reports whether the chamado is still open.
func (c *Chamado) Aberto() bool {
	return c.Status == StatusAberto
}

// Concluido reports whether the chamado has been resolved.
func (c *Chamado) Concluido() bool {
	return c.Status == StatusConcluido
}
