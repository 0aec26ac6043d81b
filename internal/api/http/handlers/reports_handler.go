package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/export"
)

// ExportRenderer turns a resolved export into file bytes.
type ExportRenderer interface {
	Render(exp *domain.Export) ([]byte, error)
}

// ReportsHandler serves report periods and spreadsheet downloads.
type ReportsHandler struct {
	registry Registry
	renderer ExportRenderer
}

// NewReportsHandler constructs handler.
func NewReportsHandler(registry Registry, renderer ExportRenderer) *ReportsHandler {
	return &ReportsHandler{registry: registry, renderer: renderer}
}

// Periods GET /api/:category/reports.
func (h *ReportsHandler) Periods(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	buckets, err := svc.Reports.AvailablePeriods(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buckets})
}

// Download GET /api/:category/reports/:year/:month.
func (h *ReportsHandler) Download(c *fiber.Ctx) error {
	_, svc, err := h.registry.resolve(c)
	if err != nil {
		return err
	}
	year, err := c.ParamsInt("year")
	if err != nil {
		year = 0
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		month = 0
	}

	exp, err := svc.Reports.ExportPeriod(c.UserContext(), year, month)
	if err != nil {
		return err
	}
	body, err := h.renderer.Render(exp)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exp.FileName()))
	return c.Send(body)
}
