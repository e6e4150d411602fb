package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/api/dto"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/internal/store"
	"github.com/spec-kit/chamados-dashboard/internal/toast"
	"github.com/spec-kit/chamados-dashboard/internal/view"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

// ClientesHandler serves the client roster page and its mutations.
type ClientesHandler struct {
	clientes *store.ClienteStore
	toast    *toast.Notifier
}

// NewClientesHandler constructs handler.
func NewClientesHandler(clientes *store.ClienteStore, notifier *toast.Notifier) *ClientesHandler {
	return &ClientesHandler{clientes: clientes, toast: notifier}
}

// List handles GET /api/clientes.
func (h *ClientesHandler) List(c *fiber.Ctx) error {
	vm := view.BuildClientes(h.clientes.State())
	return c.JSON(fiber.Map{"data": vm, "toast": h.toast.Current()})
}

// Create handles POST /api/clientes.
func (h *ClientesHandler) Create(c *fiber.Ctx) error {
	var req dto.CriarClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	cliente, err := h.clientes.AddCliente(c.Context(), store.ClienteInput{
		Nome:       req.Nome,
		Telefone:   req.Telefone,
		Email:      req.Email,
		Observacao: req.Observacao,
	})
	if err != nil {
		h.toast.Error("Erro ao cadastrar: " + err.Error())
		return err
	}

	h.toast.Success("Cliente cadastrado com sucesso.")
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": cliente, "toast": h.toast.Current()})
}

// Update handles PUT /api/clientes/:id.
func (h *ClientesHandler) Update(c *fiber.Ctx) error {
	var req dto.AtualizarClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	patch := repository.ClientePatch{
		Nome:       req.Nome,
		Telefone:   req.Telefone,
		Email:      req.Email,
		Observacao: req.Observacao,
	}
	if err := h.clientes.UpdateCliente(c.Context(), c.Params("id"), patch); err != nil {
		h.toast.Error("Erro ao atualizar: " + err.Error())
		return err
	}

	h.toast.Success("Cliente atualizado.")
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}, "toast": h.toast.Current()})
}

// Delete handles DELETE /api/clientes/:id.
func (h *ClientesHandler) Delete(c *fiber.Ctx) error {
	if err := h.clientes.DeleteCliente(c.Context(), c.Params("id")); err != nil {
		h.toast.Error("Erro ao excluir: " + err.Error())
		return err
	}

	h.toast.Success("Cliente excluido.")
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}, "toast": h.toast.Current()})
}
