package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/api/dto"
	"github.com/spec-kit/chamados-dashboard/internal/auth"
	"github.com/spec-kit/chamados-dashboard/internal/service"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

// AuthHandler exposes the register/login/logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Senha == "" {
		return util.NewValidationError("email and senha required", nil)
	}

	user, token, exp, err := h.auth.SignUp(c.Context(), req.Email, req.Senha, req.ConfirmarSenha)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: exp},
			"returnUrl": auth.ResolveReturnURL(c.Query("returnUrl")),
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Senha == "" {
		return util.NewValidationError("email and senha required", nil)
	}

	user, token, exp, err := h.auth.SignIn(c.Context(), req.Email, req.Senha)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: exp},
			"returnUrl": auth.ResolveReturnURL(c.Query("returnUrl")),
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.SignOut(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"returnUrl": "/login"}})
}
