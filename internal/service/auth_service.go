package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/auth"
	"github.com/spec-kit/chamados-dashboard/internal/config"
	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService coordinates registration and login flows and publishes the
// process session stream. The service owns one session at a time; every
// sign-in, sign-out and fault transition is fanned out to registered
// listeners, the most recent state replayed on registration.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	minPassword int
	logger      *zap.Logger

	mu        sync.Mutex
	seq       int
	listeners map[int]func(domain.SessionState)
	current   domain.SessionState
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Logger   *zap.Logger
}

// NewAuthService builds the service. The session starts loading; Start
// resolves it to unauthenticated once the process is ready to serve.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
		minPassword: cfg.Auth.MinPasswordLength,
		logger:      deps.Logger,
		listeners:   make(map[int]func(domain.SessionState)),
		current:     domain.SessionState{Status: domain.SessionLoading},
	}
}

// Start resolves the initial session. No credentials persist across process
// restarts, so the resolved state is unauthenticated.
func (s *AuthService) Start() {
	s.emit(domain.SessionState{Status: domain.SessionUnauthenticated})
}

// OnSessionChange registers a session listener and replays the current state
// to it. The returned func unregisters; safe to call more than once.
func (s *AuthService) OnSessionChange(fn func(domain.SessionState)) (cancel func()) {
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

// CachedUID returns the current session's user id, or "" when there is none.
func (s *AuthService) CachedUID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.UID()
}

// SignUp creates a new account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return nil, "", time.Time{}, util.NewValidationError("invalid email", map[string]any{"field": "email"})
	}
	if len(password) < s.minPassword {
		return nil, "", time.Time{}, util.NewValidationError("password too short", map[string]any{"field": "senha", "min": s.minPassword})
	}
	if password != confirm {
		return nil, "", time.Time{}, util.NewValidationError("password confirmation mismatch", map[string]any{"field": "confirmarSenha"})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, util.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	s.emit(domain.SessionState{
		Status: domain.SessionAuthenticated,
		User:   &domain.SessionUser{ID: user.ID, Email: user.Email},
	})
	return user, token, exp, nil
}

// SignIn authenticates a user by email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.logger.Info("user signed in", zap.String("user_id", user.ID))
	s.emit(domain.SessionState{
		Status: domain.SessionAuthenticated,
		User:   &domain.SessionUser{ID: user.ID, Email: user.Email},
	})
	return user, token, exp, nil
}

// SignOut drops the current session. Tokens stay stateless; only the session
// stream transitions.
func (s *AuthService) SignOut(_ context.Context) error {
	s.emit(domain.SessionState{Status: domain.SessionUnauthenticated})
	return nil
}

// Fail pushes the session into the error state, as a provider fault would.
func (s *AuthService) Fail(err error) {
	s.emit(domain.SessionState{Status: domain.SessionError, Error: err.Error()})
}

// Tokens exposes the token manager for request middleware.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) emit(state domain.SessionState) {
	s.mu.Lock()
	s.current = state
	fns := make([]func(domain.SessionState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}
