package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/api/dto"
	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/internal/store"
	"github.com/spec-kit/chamados-dashboard/internal/toast"
	"github.com/spec-kit/chamados-dashboard/internal/view"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

// AbertosHandler serves the open-ticket page and its mutations.
type AbertosHandler struct {
	chamados *store.ChamadoStore
	clientes *store.ClienteStore
	toast    *toast.Notifier
}

// NewAbertosHandler constructs handler.
func NewAbertosHandler(chamados *store.ChamadoStore, clientes *store.ClienteStore, notifier *toast.Notifier) *AbertosHandler {
	return &AbertosHandler{chamados: chamados, clientes: clientes, toast: notifier}
}

// List handles GET /api/abertos.
func (h *AbertosHandler) List(c *fiber.Ctx) error {
	vm := view.BuildAbertos(h.chamados.State(), h.clientes.State())
	return c.JSON(fiber.Map{"data": vm, "toast": h.toast.Current()})
}

// Create handles POST /api/abertos. tipoCadastro selects the intake path.
func (h *AbertosHandler) Create(c *fiber.Ctx) error {
	var req dto.CriarChamadoRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	var (
		chamado *domain.Chamado
		err     error
	)
	clienteNome := req.ClienteNome
	if clienteNome == "" {
		clienteNome = req.Cliente
	}
	switch domain.TipoCadastro(req.TipoCadastro) {
	case domain.TipoAntigo:
		chamado, err = h.chamados.AddChamadoAntigo(c.Context(), store.AntigoChamadoInput{
			Motivo:      req.Motivo,
			ClienteID:   req.ClienteID,
			ClienteNome: clienteNome,
			Data:        req.Data,
			Resolucao:   req.Resolucao,
		})
	default:
		chamado, err = h.chamados.AddChamadoNovo(c.Context(), store.NovoChamadoInput{
			Motivo:      req.Motivo,
			ClienteID:   req.ClienteID,
			ClienteNome: clienteNome,
			Data:        req.Data,
		})
	}
	if err != nil {
		h.toast.Error("Erro ao salvar: " + err.Error())
		return err
	}

	h.toast.Success("Chamado salvo com sucesso.")
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": chamado, "toast": h.toast.Current()})
}

// Finalizar handles POST /api/abertos/:id/finalizar.
func (h *AbertosHandler) Finalizar(c *fiber.Ctx) error {
	var req dto.FinalizarChamadoRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.chamados.FinalizarChamado(c.Context(), c.Params("id"), req.Resolucao); err != nil {
		h.toast.Error("Erro ao finalizar: " + err.Error())
		return err
	}

	h.toast.Success("Chamado finalizado.")
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}, "toast": h.toast.Current()})
}

// Update handles PUT /api/abertos/:id.
func (h *AbertosHandler) Update(c *fiber.Ctx) error {
	var req dto.AtualizarChamadoRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	patch := repository.ChamadoPatch{
		Motivo:      req.Motivo,
		Descricao:   req.Descricao,
		Cliente:     req.Cliente,
		ClienteID:   req.ClienteID,
		ClienteNome: req.ClienteNome,
		Data:        req.Data,
		Resolucao:   req.Resolucao,
	}
	if req.Status != nil {
		status := domain.StatusChamado(*req.Status)
		if status != domain.StatusAberto && status != domain.StatusConcluido {
			return util.NewValidationError("invalid status", map[string]any{"status": *req.Status})
		}
		patch.Status = &status
	}

	if err := h.chamados.UpdateChamado(c.Context(), c.Params("id"), patch); err != nil {
		h.toast.Error("Erro ao atualizar: " + err.Error())
		return err
	}

	h.toast.Success("Chamado atualizado.")
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}, "toast": h.toast.Current()})
}

// Delete handles DELETE /api/abertos/:id.
func (h *AbertosHandler) Delete(c *fiber.Ctx) error {
	if err := h.chamados.DeleteChamado(c.Context(), c.Params("id")); err != nil {
		h.toast.Error("Erro ao excluir: " + err.Error())
		return err
	}

	h.toast.Success("Chamado excluído.")
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}, "toast": h.toast.Current()})
}
