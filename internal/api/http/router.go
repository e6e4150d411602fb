package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/chamados-dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Abertos    *handlers.AbertosHandler
	Concluidos *handlers.ConcluidosHandler
	Clientes   *handlers.ClientesHandler
	Dashboard  *handlers.DashboardHandler
	Guard      *auth.Guard
	Middleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Auth and health stay open; the page
// endpoints sit behind the route guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	api := app.Group("/api", cfg.Guard.Handle, cfg.Middleware.Handle)

	api.Get("/abertos", cfg.Abertos.List)
	api.Post("/abertos", cfg.Abertos.Create)
	api.Post("/abertos/:id/finalizar", cfg.Abertos.Finalizar)
	api.Put("/abertos/:id", cfg.Abertos.Update)
	api.Delete("/abertos/:id", cfg.Abertos.Delete)

	api.Get("/concluidos", cfg.Concluidos.List)

	api.Get("/clientes", cfg.Clientes.List)
	api.Post("/clientes", cfg.Clientes.Create)
	api.Put("/clientes/:id", cfg.Clientes.Update)
	api.Delete("/clientes/:id", cfg.Clientes.Delete)

	api.Get("/dashboard", cfg.Dashboard.Get)
}
