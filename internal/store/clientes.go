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

// ClienteStore keeps the live client roster of the session's user. Session
// handling matches ChamadoStore: same transition table, same terminal-fault
// behavior, same idempotent resubscription.
type ClienteStore struct {
	session    *SessionStore
	collection backend.ClienteCollection
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu         sync.Mutex
	seq        int
	listeners  map[int]func(domain.DataState[[]domain.Cliente])
	state      domain.DataState[[]domain.Cliente]
	currentUID string
	generation int
	cancelSub  func()
	stop       func()
}

// ClienteStoreDeps wires the store's collaborators.
type ClienteStoreDeps struct {
	Session    *SessionStore
	Collection backend.ClienteCollection
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewClienteStore builds the store; call Start to attach to the session.
func NewClienteStore(deps ClienteStoreDeps) *ClienteStore {
	return &ClienteStore{
		session:    deps.Session,
		collection: deps.Collection,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		listeners:  make(map[int]func(domain.DataState[[]domain.Cliente])),
		state:      domain.DataState[[]domain.Cliente]{Status: domain.DataLoading, Data: []domain.Cliente{}},
	}
}

// Start attaches the store to the session stream.
func (s *ClienteStore) Start() {
	s.stop = s.session.Subscribe(s.onSession)
}

// Stop detaches from the session and drops any live subscription.
func (s *ClienteStore) Stop() {
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
func (s *ClienteStore) State() domain.DataState[[]domain.Cliente] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and replays the current state to it.
func (s *ClienteStore) Subscribe(fn func(domain.DataState[[]domain.Cliente])) (cancel func()) {
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

func (s *ClienteStore) onSession(session domain.SessionState) {
	switch session.Status {
	case domain.SessionLoading:
		s.mu.Lock()
		data := s.state.Data
		s.mu.Unlock()
		s.emit(domain.DataState[[]domain.Cliente]{Status: domain.DataLoading, Data: data})
	case domain.SessionError:
		s.dropSubscription()
		s.emit(domain.DataState[[]domain.Cliente]{
			Status: domain.DataError,
			Data:   []domain.Cliente{},
			Error:  session.Error,
		})
	case domain.SessionUnauthenticated:
		s.dropSubscription()
		s.emit(domain.DataState[[]domain.Cliente]{Status: domain.DataReady, Data: []domain.Cliente{}})
	case domain.SessionAuthenticated:
		s.resubscribe(session.UID())
	}
}

func (s *ClienteStore) resubscribe(uid string) {
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
	s.emit(domain.DataState[[]domain.Cliente]{Status: domain.DataLoading, Data: []domain.Cliente{}})

	cancelSub := s.collection.Subscribe(context.Background(), uid,
		func(items []domain.Cliente) { s.onSnapshot(gen, items) },
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

func (s *ClienteStore) onSnapshot(gen int, items []domain.Cliente) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	if items == nil {
		items = []domain.Cliente{}
	}
	s.metrics.RecordSnapshot("clientes", len(items))
	s.emit(domain.DataState[[]domain.Cliente]{Status: domain.DataReady, Data: items})
}

func (s *ClienteStore) onFault(gen int, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.metrics.RecordError("clientes", "SUBSCRIPTION_FAULT")
	s.logger.Error("clientes subscription fault", zap.Error(err))
	s.emit(domain.DataState[[]domain.Cliente]{
		Status: domain.DataError,
		Data:   []domain.Cliente{},
		Error:  err.Error(),
	})
}

func (s *ClienteStore) dropSubscription() {
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

func (s *ClienteStore) emit(state domain.DataState[[]domain.Cliente]) {
	s.mu.Lock()
	s.state = state
	fns := make([]func(domain.DataState[[]domain.Cliente]), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (s *ClienteStore) resolveUID() (string, error) {
	uid := s.session.CurrentUID()
	if uid == "" {
		return "", util.NewAuthRequired()
	}
	return uid, nil
}

// ClienteInput is the client registration form.
type ClienteInput struct {
	Nome       string
	Telefone   string
	Email      string
	Observacao string
}

// AddCliente registers a client for the session's user.
func (s *ClienteStore) AddCliente(ctx context.Context, in ClienteInput) (*domain.Cliente, error) {
	uid, err := s.resolveUID()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Nome) == "" {
		return nil, util.NewValidationError("nome is required", map[string]any{"field": "nome"})
	}

	cliente := &domain.Cliente{
		Nome:       in.Nome,
		Telefone:   in.Telefone,
		Email:      in.Email,
		Observacao: in.Observacao,
	}
	if err := s.collection.Add(ctx, uid, cliente); err != nil {
		s.metrics.RecordError("clientes", "BACKEND_WRITE_FAILED")
		return nil, util.NewWriteFailed("cadastrar cliente", err)
	}

	s.metrics.RecordMutation("clientes", "add")
	s.publish(ctx, events.EventClienteCriado, uid, cliente.ID, events.ClienteCriadoPayload{Nome: cliente.Nome})
	return cliente, nil
}

// UpdateCliente applies a partial patch; atualizadoEm is stamped server-side.
func (s *ClienteStore) UpdateCliente(ctx context.Context, id string, patch repository.ClientePatch) error {
	uid, err := s.resolveUID()
	if err != nil {
		return err
	}
	if patch.Nome != nil && strings.TrimSpace(*patch.Nome) == "" {
		return util.NewValidationError("nome cannot be empty", map[string]any{"field": "nome"})
	}

	if err := s.collection.Update(ctx, uid, id, patch); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return util.NewNotFound("cliente", map[string]any{"id": id})
		}
		s.metrics.RecordError("clientes", "BACKEND_WRITE_FAILED")
		return util.NewWriteFailed("atualizar cliente", err)
	}

	s.metrics.RecordMutation("clientes", "update")
	s.publish(ctx, events.EventClienteAtualizado, uid, id, nil)
	return nil
}

// DeleteCliente removes a client. Tickets keep their denormalized client
// name, so historical records survive the removal.
func (s *ClienteStore) DeleteCliente(ctx context.Context, id string) error {
	uid, err := s.resolveUID()
	if err != nil {
		return err
	}

	if err := s.collection.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return util.NewNotFound("cliente", map[string]any{"id": id})
		}
		s.metrics.RecordError("clientes", "BACKEND_WRITE_FAILED")
		return util.NewWriteFailed("excluir cliente", err)
	}

	s.metrics.RecordMutation("clientes", "delete")
	s.publish(ctx, events.EventClienteExcluido, uid, id, nil)
	return nil
}

func (s *ClienteStore) publish(ctx context.Context, typ events.EventType, uid, entityID string, payload interface{}) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		UserID:    uid,
		EntityID:  entityID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
