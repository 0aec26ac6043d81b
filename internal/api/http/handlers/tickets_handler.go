package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/failtrack/internal/api/dto"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// TicketsHandler manages the per-category ticket endpoints.
type TicketsHandler struct {
	registry Registry
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(registry Registry) *TicketsHandler {
	return &TicketsHandler{registry: registry}
}

// List GET /api/:category/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	category, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	items, err := svc.Tickets.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{Category: category, Items: items}})
}

// Get GET /api/:category/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := svc.Tickets.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Create POST /api/:category/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := svc.Tickets.CreateTicket(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Envelope{Success: true, Message: "Registro exitoso", Data: ticket})
}

// Update PUT /api/:category/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := svc.Tickets.UpdateTicket(c.UserContext(), id, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Registro actualizado", Data: ticket})
}

// Delete DELETE /api/:category/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := svc.Tickets.DeleteTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Registro eliminado"})
}
