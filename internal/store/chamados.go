package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/backend"
	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/events"
	"github.com/spec-kit/chamados-dashboard/internal/observability"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

// ChamadoStore keeps the live chamados collection of the session's user.
//
// Session transitions drive the subscription: a loading session re-emits the
// retained data under loading; an error or unauthenticated session drops the
// subscription (error keeps the error message, unauthenticated resolves to
// ready and empty); an authenticated session with the same uid is a no-op;
// a new uid drops the old subscription, resets to loading and empty, and
// opens a fresh one. A subscription fault is terminal until the session
// identity changes.
type ChamadoStore struct {
	session    *SessionStore
	collection backend.ChamadoCollection
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu         sync.Mutex
	seq        int
	listeners  map[int]func(domain.DataState[[]domain.Chamado])
	state      domain.DataState[[]domain.Chamado]
	currentUID string
	generation int
	cancelSub  func()
	stop       func()
}

// ChamadoStoreDeps wires the store's collaborators.
type ChamadoStoreDeps struct {
	Session    *SessionStore
	Collection backend.ChamadoCollection
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewChamadoStore builds the store; call Start to attach to the session.
func NewChamadoStore(deps ChamadoStoreDeps) *ChamadoStore {
	return &ChamadoStore{
		session:    deps.Session,
		collection: deps.Collection,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		listeners:  make(map[int]func(domain.DataState[[]domain.Chamado])),
		state:      domain.DataState[[]domain.Chamado]{Status: domain.DataLoading, Data: []domain.Chamado{}},
	}
}

// Start attaches the store to the session stream.
func (s *ChamadoStore) Start() {
	s.stop = s.session.Subscribe(s.onSession)
}

// Stop detaches from the session and drops any live subscription.
func (s *ChamadoStore) Stop() {
	if s.stop != nil {
		s.stop()
	}
	s.mu.Lock()
	cancel := s.cancelSub
	s.cancelSub = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// State returns the most recent emitted state.
func (s *ChamadoStore) State() domain.DataState[[]domain.Chamado] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and replays the current state to it.
func (s *ChamadoStore) Subscribe(fn func(domain.DataState[[]domain.Chamado])) (cancel func()) {
	s.mu.Lock()
	s.seq++
	key := s.seq
	s.listeners[key] = fn
	state := s.state
	s.mu.Unlock()

	fn(state)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, key)
			s.mu.Unlock()
		})
	}
}

func (s *ChamadoStore) onSession(session domain.SessionState) {
	switch session.Status {
	case domain.SessionLoading:
		s.mu.Lock()
		data := s.state.Data
		s.mu.Unlock()
		s.emit(domain.DataState[[]domain.Chamado]{Status: domain.DataLoading, Data: data})
	case domain.SessionError:
		s.dropSubscription()
		s.emit(domain.DataState[[]domain.Chamado]{
			Status: domain.DataError,
			Data:   []domain.Chamado{},
			Error:  session.Error,
		})
	case domain.SessionUnauthenticated:
		s.dropSubscription()
		s.emit(domain.DataState[[]domain.Chamado]{Status: domain.DataReady, Data: []domain.Chamado{}})
	case domain.SessionAuthenticated:
		s.resubscribe(session.UID())
	}
}

// resubscribe is a no-op when uid matches the live subscription.
func (s *ChamadoStore) resubscribe(uid string) {
	s.mu.Lock()
	if uid == s.currentUID {
		s.mu.Unlock()
		return
	}
	cancel := s.cancelSub
	s.cancelSub = nil
	s.currentUID = uid
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.emit(domain.DataState[[]domain.Chamado]{Status: domain.DataLoading, Data: []domain.Chamado{}})

	cancelSub := s.collection.Subscribe(context.Background(), uid,
		func(items []domain.Chamado) { s.onSnapshot(gen, items) },
		func(err error) { s.onFault(gen, err) },
	)

	s.mu.Lock()
	if gen == s.generation {
		s.cancelSub = cancelSub
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	cancelSub()
}

func (s *ChamadoStore) onSnapshot(gen int, items []domain.Chamado) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	if items == nil {
		items = []domain.Chamado{}
	}
	s.metrics.RecordSnapshot("chamados", len(items))
	s.emit(domain.DataState[[]domain.Chamado]{Status: domain.DataReady, Data: items})
}

func (s *ChamadoStore) onFault(gen int, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.metrics.RecordError("chamados", "SUBSCRIPTION_FAULT")
	s.logger.Error("chamados subscription fault", zap.Error(err))
	s.emit(domain.DataState[[]domain.Chamado]{
		Status: domain.DataError,
		Data:   []domain.Chamado{},
		Error:  err.Error(),
	})
}

func (s *ChamadoStore) dropSubscription() {
	s.mu.Lock()
	cancel := s.cancelSub
	s.cancelSub = nil
	s.currentUID = ""
	s.generation++
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *ChamadoStore) emit(state domain.DataState[[]domain.Chamado]) {
	s.mu.Lock()
	s.state = state
	fns := make([]func(domain.DataState[[]domain.Chamado]), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (s *ChamadoStore) resolveUID() (string, error) {
	uid := s.session.CurrentUID()
	if uid == "" {
		return "", util.NewAuthRequired()
	}
	return uid, nil
}

// NovoChamadoInput is the open-ticket registration form.
type NovoChamadoInput struct {
	Motivo      string
	ClienteID   string
	ClienteNome string
	Data        string
}

// AddChamadoNovo registers an open ticket for the session's user.
func (s *ChamadoStore) AddChamadoNovo(ctx context.Context, in NovoChamadoInput) (*domain.Chamado, error) {
	uid, err := s.resolveUID()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, util.NewValidationError("motivo is required", map[string]any{"field": "motivo"})
	}
	if strings.TrimSpace(in.ClienteID) == "" && strings.TrimSpace(in.ClienteNome) == "" {
		return nil, util.NewValidationError("cliente is required", map[string]any{"field": "cliente"})
	}
	if strings.TrimSpace(in.Data) == "" {
		return nil, util.NewValidationError("data is required", map[string]any{"field": "data"})
	}

	chamado := &domain.Chamado{
		Motivo:       in.Motivo,
		Cliente:      in.ClienteNome,
		ClienteID:    in.ClienteID,
		ClienteNome:  in.ClienteNome,
		Data:         in.Data,
		Status:       domain.StatusAberto,
		TipoCadastro: domain.TipoNovo,
	}
	if err := s.collection.Add(ctx, uid, chamado); err != nil {
		s.metrics.RecordError("chamados", "BACKEND_WRITE_FAILED")
		return nil, util.NewWriteFailed("cadastrar chamado", err)
	}

	s.metrics.RecordMutation("chamados", "add_novo")
	s.publish(ctx, events.EventChamadoCriado, uid, chamado.ID, events.ChamadoCriadoPayload{
		Motivo:       chamado.Motivo,
		ClienteNome:  chamado.ClienteNome,
		Data:         chamado.Data,
		Status:       chamado.Status,
		TipoCadastro: chamado.TipoCadastro,
	})
	return chamado, nil
}

// AntigoChamadoInput is the backfill form for tickets resolved before the
// system existed. The record is created already completed; the client
// reference is carried exactly like the novo path.
type AntigoChamadoInput struct {
	Motivo      string
	ClienteID   string
	ClienteNome string
	Data        string
	Resolucao   string
}

// AddChamadoAntigo registers an already-completed ticket.
func (s *ChamadoStore) AddChamadoAntigo(ctx context.Context, in AntigoChamadoInput) (*domain.Chamado, error) {
	uid, err := s.resolveUID()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, util.NewValidationError("motivo is required", map[string]any{"field": "motivo"})
	}
	if strings.TrimSpace(in.ClienteID) == "" && strings.TrimSpace(in.ClienteNome) == "" {
		return nil, util.NewValidationError("cliente is required", map[string]any{"field": "cliente"})
	}
	if strings.TrimSpace(in.Data) == "" {
		return nil, util.NewValidationError("data is required", map[string]any{"field": "data"})
	}
	if strings.TrimSpace(in.Resolucao) == "" {
		return nil, util.NewValidationError("resolucao is required", map[string]any{"field": "resolucao"})
	}

	chamado := &domain.Chamado{
		Motivo:       in.Motivo,
		Cliente:      in.ClienteNome,
		ClienteID:    in.ClienteID,
		ClienteNome:  in.ClienteNome,
		Data:         in.Data,
		Status:       domain.StatusConcluido,
		Resolucao:    in.Resolucao,
		TipoCadastro: domain.TipoAntigo,
	}
	if err := s.collection.Add(ctx, uid, chamado); err != nil {
		s.metrics.RecordError("chamados", "BACKEND_WRITE_FAILED")
		return nil, util.NewWriteFailed("cadastrar chamado", err)
	}

	s.metrics.RecordMutation("chamados", "add_antigo")
	s.publish(ctx, events.EventChamadoCriado, uid, chamado.ID, events.ChamadoCriadoPayload{
		Motivo:       chamado.Motivo,
		ClienteNome:  chamado.ClienteNome,
		Data:         chamado.Data,
		Status:       chamado.Status,
		TipoCadastro: chamado.TipoCadastro,
	})
	return chamado, nil
}

// FinalizarChamado completes an open ticket: status, resolution and
// completion instant move together.
func (s *ChamadoStore) FinalizarChamado(ctx context.Context, id, resolucao string) error {
	uid, err := s.resolveUID()
	if err != nil {
		return err
	}
	if strings.TrimSpace(resolucao) == "" {
		return util.NewValidationError("resolucao is required", map[string]any{"field": "resolucao"})
	}

	if err := s.collection.Complete(ctx, uid, id, resolucao); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return util.NewNotFound("chamado", map[string]any{"id": id})
		}
		s.metrics.RecordError("chamados", "BACKEND_WRITE_FAILED")
		return util.NewWriteFailed("finalizar chamado", err)
	}

	s.metrics.RecordMutation("chamados", "finalizar")
	s.publish(ctx, events.EventChamadoFinalizado, uid, id, events.ChamadoFinalizadoPayload{Resolucao: resolucao})
	return nil
}

// UpdateChamado applies a partial patch. Setting status to concluido without
// a non-empty resolution is rejected.
func (s *ChamadoStore) UpdateChamado(ctx context.Context, id string, patch repository.ChamadoPatch) error {
	uid, err := s.resolveUID()
	if err != nil {
		return err
	}
	if patch.Status != nil && *patch.Status == domain.StatusConcluido {
		if patch.Resolucao == nil || strings.TrimSpace(*patch.Resolucao) == "" {
			return util.NewValidationError("resolucao is required to complete a chamado", map[string]any{"field": "resolucao"})
		}
	}
	if patch.ClienteID != nil && patch.ClienteNome != nil && patch.Cliente != nil &&
		strings.TrimSpace(*patch.ClienteID) == "" &&
		strings.TrimSpace(*patch.ClienteNome) == "" &&
		strings.TrimSpace(*patch.Cliente) == "" {
		return util.NewValidationError("cliente is required", map[string]any{"field": "cliente"})
	}

	if err := s.collection.Update(ctx, uid, id, patch); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return util.NewNotFound("chamado", map[string]any{"id": id})
		}
		s.metrics.RecordError("chamados", "BACKEND_WRITE_FAILED")
		return util.NewWriteFailed("atualizar chamado", err)
	}

	s.metrics.RecordMutation("chamados", "update")
	s.publish(ctx, events.EventChamadoAtualizado, uid, id, nil)
	return nil
}

// DeleteChamado removes a ticket.
func (s *ChamadoStore) DeleteChamado(ctx context.Context, id string) error {
	uid, err := s.resolveUID()
	if err != nil {
		return err
	}

	if err := s.collection.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return util.NewNotFound("chamado", map[string]any{"id": id})
		}
		s.metrics.RecordError("chamados", "BACKEND_WRITE_FAILED")
		return util.NewWriteFailed("excluir chamado", err)
	}

	s.metrics.RecordMutation("chamados", "delete")
	s.publish(ctx, events.EventChamadoExcluido, uid, id, nil)
	return nil
}

func (s *ChamadoStore) publish(ctx context.Context, typ events.EventType, uid, entityID string, payload interface{}) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		UserID:    uid,
		EntityID:  entityID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
