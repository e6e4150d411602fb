package domain

import "time"

// Cliente is the customer record chamados are attributed to. The link from
// chamados is soft: deleting a cliente leaves referencing chamados with only
// their denormalized name snapshot.
type Cliente struct {
	ID           string     `json:"id"`
	Nome         string     `json:"nome"`
	Telefone     string     `json:"telefone,omitempty"`
	Email        string     `json:"email,omitempty"`
	Observacao   string     `json:"observacao,omitempty"`
	Ativo        bool       `json:"ativo"`
	CriadoEm     *time.Time `json:"criadoEm"`
	AtualizadoEm *time.Time `json:"atualizadoEm"`
}
