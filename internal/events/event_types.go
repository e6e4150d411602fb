package events

import (
	"time"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventChamadoCriado     EventType = "chamado_criado"
	EventChamadoFinalizado EventType = "chamado_finalizado"
	EventChamadoAtualizado EventType = "chamado_atualizado"
	EventChamadoExcluido   EventType = "chamado_excluido"
	EventClienteCriado     EventType = "cliente_criado"
	EventClienteAtualizado EventType = "cliente_atualizado"
	EventClienteExcluido   EventType = "cliente_excluido"
)

// Event represents a domain event emitted by the stores after a successful
// backend mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ChamadoCriadoPayload payload.
type ChamadoCriadoPayload struct {
	Motivo       string               `json:"motivo"`
	ClienteNome  string               `json:"cliente_nome,omitempty"`
	Data         string               `json:"data"`
	Status       domain.StatusChamado `json:"status"`
	TipoCadastro domain.TipoCadastro  `json:"tipo_cadastro"`
}

// ChamadoFinalizadoPayload payload.
type ChamadoFinalizadoPayload struct {
	Resolucao string `json:"resolucao"`
}

// ClienteCriadoPayload payload.
type ClienteCriadoPayload struct {
	Nome string `json:"nome"`
}
