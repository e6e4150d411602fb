// Package store holds the live per-process state: the session stream and the
// ticket/client collections derived from it. Stores re-subscribe on session
// identity changes and deliver full-replace snapshots to their listeners.
package store

import (
	"context"
	"sync"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// SessionProvider is the auth side of the session stream.
type SessionProvider interface {
	// OnSessionChange registers a listener and replays the current state.
	OnSessionChange(fn func(domain.SessionState)) (cancel func())
	// CachedUID is the provider's synchronous best-effort user id.
	CachedUID() string
}

// SessionStore adapts the provider stream into an observable state cell.
// Initial state is loading; the store never resolves on its own, only on
// provider emissions.
type SessionStore struct {
	provider SessionProvider

	mu        sync.Mutex
	seq       int
	listeners map[int]func(domain.SessionState)
	current   domain.SessionState
	started   bool
	stop      func()

	resolved     chan struct{}
	resolvedOnce sync.Once
}

// NewSessionStore builds the store; call Start to attach to the provider.
func NewSessionStore(provider SessionProvider) *SessionStore {
	return &SessionStore{
		provider:  provider,
		listeners: make(map[int]func(domain.SessionState)),
		current:   domain.SessionState{Status: domain.SessionLoading},
		resolved:  make(chan struct{}),
	}
}

// Start attaches to the provider stream. Calling it twice is a no-op.
func (s *SessionStore) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()
	s.stop = s.provider.OnSessionChange(s.apply)
}

// Stop detaches from the provider stream.
func (s *SessionStore) Stop() {
	if s.stop != nil {
		s.stop()
	}
}

// State returns the most recent session state.
func (s *SessionStore) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a listener and replays the current state to it.
func (s *SessionStore) Subscribe(fn func(domain.SessionState)) (cancel func()) {
	s.mu.Lock()
	s.seq++
	key := s.seq
	s.listeners[key] = fn
	state := s.current
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

// CurrentUID is the synchronous best-effort user id: the last emitted
// session's uid, falling back to the provider's cached session.
func (s *SessionStore) CurrentUID() string {
	s.mu.Lock()
	uid := s.current.UID()
	s.mu.Unlock()
	if uid != "" {
		return uid
	}
	return s.provider.CachedUID()
}

// WaitResolved blocks until the session has left the loading state at least
// once, or ctx ends.
func (s *SessionStore) WaitResolved(ctx context.Context) error {
	select {
	case <-s.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionStore) apply(state domain.SessionState) {
	s.mu.Lock()
	s.current = state
	fns := make([]func(domain.SessionState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if state.Status != domain.SessionLoading {
		s.resolvedOnce.Do(func() { close(s.resolved) })
	}
	for _, fn := range fns {
		fn(state)
	}
}
