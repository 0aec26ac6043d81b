package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/failtrack/internal/service"
)

// LookupsHandler exposes the reference tables used by ticket forms.
type LookupsHandler struct {
	service *service.LookupService
}

// NewLookupsHandler constructs handler.
func NewLookupsHandler(lookupService *service.LookupService) *LookupsHandler {
	return &LookupsHandler{service: lookupService}
}

// Lines GET /api/lookups/lines.
func (h *LookupsHandler) Lines(c *fiber.Ctx) error {
	lines, err := h.service.Lines(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lines})
}

// Machines GET /api/lookups/lines/:id/machines.
func (h *LookupsHandler) Machines(c *fiber.Ctx) error {
	lineID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	machines, err := h.service.MachinesByLine(c.UserContext(), lineID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": machines})
}

// Statuses GET /api/lookups/statuses.
func (h *LookupsHandler) Statuses(c *fiber.Ctx) error {
	statuses, err := h.service.Statuses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statuses})
}
