package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/service"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// CategoryServices groups the engine instances of one ticket category.
type CategoryServices struct {
	Tickets *service.TicketService
	Reports *service.ReportService
}

// Registry maps the :category route parameter to its services.
type Registry map[domain.Category]CategoryServices

func (r Registry) resolve(c *fiber.Ctx) (domain.Category, CategoryServices, error) {
	raw := c.Params("category")
	category, ok := domain.ParseCategory(raw)
	if !ok {
		return "", CategoryServices{}, apperrors.NewNotFound("category", map[string]any{"category": raw})
	}
	svc, ok := r[category]
	if !ok {
		return "", CategoryServices{}, apperrors.NewNotFound("category", map[string]any{"category": raw})
	}
	return category, svc, nil
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return id, nil
}
