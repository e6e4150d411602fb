package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/config"
	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

func newAuthService() *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4,
			MinPasswordLength:     6,
		},
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo: repository.NewMemoryUserRepository(),
		Logger:   zap.NewNop(),
	})
}

func authErrCode(t *testing.T, err error) string {
	t.Helper()
	var de *util.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return de.Code
}

func TestAuthServiceSignUpValidation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
	}{
		{"malformed email", "not-an-email", "secret1", "secret1"},
		{"email without domain", "user@host", "secret1", "secret1"},
		{"short password", "user@example.com", "abc", "abc"},
		{"confirmation mismatch", "user@example.com", "secret1", "secret2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.SignUp(ctx, tt.email, tt.password, tt.confirm)
			if code := authErrCode(t, err); code != "VALIDATION_FAILED" {
				t.Errorf("code = %s, want VALIDATION_FAILED", code)
			}
		})
	}
}

func TestAuthServiceSignUpAndSignIn(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	user, token, _, err := svc.SignUp(ctx, "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatalf("user = %+v token = %q", user, token)
	}
	if svc.CachedUID() != user.ID {
		t.Errorf("CachedUID = %q, want %q", svc.CachedUID(), user.ID)
	}

	_, _, _, err = svc.SignUp(ctx, "ana@example.com", "secret1", "secret1")
	if code := authErrCode(t, err); code != "CONFLICT" {
		t.Errorf("duplicate email code = %s, want CONFLICT", code)
	}

	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if svc.CachedUID() != "" {
		t.Error("CachedUID not cleared after sign-out")
	}

	signedIn, _, _, err := svc.SignIn(ctx, "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if signedIn.ID != user.ID {
		t.Errorf("signed-in id = %q, want %q", signedIn.ID, user.ID)
	}
}

func TestAuthServiceSignInRejectsBadCredentials(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	if _, _, _, err := svc.SignUp(ctx, "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "outra@example.com", "secret1"},
		{"wrong password", "ana@example.com", "errada1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.SignIn(ctx, tt.email, tt.password)
			if code := authErrCode(t, err); code != "UNAUTHORIZED" {
				t.Errorf("code = %s, want UNAUTHORIZED", code)
			}
		})
	}
}

func TestAuthServiceSessionStream(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	var states []domain.SessionState
	cancel := svc.OnSessionChange(func(state domain.SessionState) {
		states = append(states, state)
	})
	defer cancel()

	if len(states) != 1 || states[0].Status != domain.SessionLoading {
		t.Fatalf("replayed state = %+v, want loading", states)
	}

	svc.Start()
	if states[len(states)-1].Status != domain.SessionUnauthenticated {
		t.Fatalf("after Start = %+v", states[len(states)-1])
	}

	if _, _, _, err := svc.SignUp(ctx, "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	last := states[len(states)-1]
	if last.Status != domain.SessionAuthenticated || last.User == nil || last.User.Email != "ana@example.com" {
		t.Fatalf("after SignUp = %+v", last)
	}

	svc.Fail(errors.New("token refresh failed"))
	last = states[len(states)-1]
	if last.Status != domain.SessionError || last.Error != "token refresh failed" {
		t.Fatalf("after Fail = %+v", last)
	}

	count := len(states)
	cancel()
	svc.Start()
	if len(states) != count {
		t.Error("listener still invoked after cancel")
	}
}
