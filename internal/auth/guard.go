package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// loginPath receives unauthenticated requests, carrying the page they wanted
// as returnUrl.
const loginPath = "/login"

// defaultReturnURL is where login lands when no usable return path exists.
const defaultReturnURL = "/abertos"

// SessionResolver is the slice of the session store the guard needs.
type SessionResolver interface {
	State() domain.SessionState
	WaitResolved(ctx context.Context) error
}

// Guard blocks protected routes until the session leaves loading, then
// allows authenticated requests and redirects the rest to login.
type Guard struct {
	session SessionResolver
}

// NewGuard constructs the guard.
func NewGuard(session SessionResolver) *Guard {
	return &Guard{session: session}
}

// Handle enforces the session on protected routes.
func (g *Guard) Handle(c *fiber.Ctx) error {
	if err := g.session.WaitResolved(c.UserContext()); err != nil {
		return err
	}
	if g.session.State().Status == domain.SessionAuthenticated {
		return c.Next()
	}
	target := loginPath + "?returnUrl=" + url.QueryEscape(c.OriginalURL())
	return c.Redirect(target, fiber.StatusFound)
}

// ResolveReturnURL picks the post-login destination. Auth pages and
// non-local paths are ignored in favor of the default page.
func ResolveReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return defaultReturnURL
	}
	if strings.HasPrefix(raw, loginPath) || strings.HasPrefix(raw, "/cadastro") {
		return defaultReturnURL
	}
	return raw
}
