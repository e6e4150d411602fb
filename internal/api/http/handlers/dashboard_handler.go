package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/store"
	"github.com/spec-kit/chamados-dashboard/internal/view"
)

// DashboardHandler serves the aggregated dashboard page.
type DashboardHandler struct {
	chamados *store.ChamadoStore
	clientes *store.ClienteStore
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(chamados *store.ChamadoStore, clientes *store.ClienteStore) *DashboardHandler {
	return &DashboardHandler{chamados: chamados, clientes: clientes}
}

// Get handles GET /api/dashboard with year/period query params. The daily
// chart defaults to the current year and month.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	hoje := view.Hoje()
	anoAtual, mesAtual := view.CurrentYearMonth(hoje)
	filtros := view.DashboardFiltros{
		Ano:       c.QueryInt("ano", view.AnoTodos),
		AnoMensal: c.QueryInt("anoMensal", anoAtual),
		Periodo:   view.TopClientesPeriodo(c.Query("periodo", string(view.PeriodoTodos))),
		AnoDiario: c.QueryInt("anoDiario", anoAtual),
		MesDiario: c.QueryInt("mesDiario", mesAtual),
	}

	vm := view.BuildDashboard(h.chamados.State(), h.clientes.State(), filtros, hoje)
	return c.JSON(fiber.Map{"data": vm})
}
