package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the bearer-token identity attached to a request.
type Principal struct {
	UserID string
	Email  string
}

// Middleware validates bearer tokens when present. Requests without an
// Authorization header pass through; the route guard already vouches for the
// process session.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle verifies the Authorization header and attaches the principal.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return c.Next()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return util.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Email: claims.Email})
	return c.Next()
}

// PrincipalFromContext retrieves the bearer identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
