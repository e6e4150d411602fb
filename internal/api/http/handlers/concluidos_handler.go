package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/store"
	"github.com/spec-kit/chamados-dashboard/internal/toast"
	"github.com/spec-kit/chamados-dashboard/internal/view"
)

// ConcluidosHandler serves the completed-ticket page.
type ConcluidosHandler struct {
	chamados *store.ChamadoStore
	clientes *store.ClienteStore
	toast    *toast.Notifier
}

// NewConcluidosHandler constructs handler.
func NewConcluidosHandler(chamados *store.ChamadoStore, clientes *store.ClienteStore, notifier *toast.Notifier) *ConcluidosHandler {
	return &ConcluidosHandler{chamados: chamados, clientes: clientes, toast: notifier}
}

// List handles GET /api/concluidos with filter and pagination query params.
func (h *ConcluidosHandler) List(c *fiber.Ctx) error {
	filtros := view.ConcluidosFiltros{
		Ano:       c.Query("ano"),
		Mes:       c.Query("mes"),
		Data:      c.Query("data"),
		ClienteID: c.Query("clienteId"),
		Texto:     c.Query("texto"),
	}
	pageSize := c.QueryInt("pageSize", view.PageSizes[0])
	page := c.QueryInt("page", 1)

	vm := view.BuildConcluidos(h.chamados.State(), h.clientes.State(), filtros, pageSize, page)
	return c.JSON(fiber.Map{"data": vm, "toast": h.toast.Current()})
}
