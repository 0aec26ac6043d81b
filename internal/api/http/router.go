package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/failtrack/internal/api/http/handlers"
	"github.com/spec-kit/failtrack/internal/auth"
	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Reports *handlers.ReportsHandler
	Lookups *handlers.LookupsHandler
	Events  *handlers.EventsHandler
	Metrics *observability.Metrics
	// AuthMiddleware guards mutations when set; nil leaves them open.
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	app.Get("/events", cfg.Events.Stream)

	api := app.Group("/api")

	lookups := api.Group("/lookups")
	lookups.Get("/lines", cfg.Lookups.Lines)
	lookups.Get("/lines/:id/machines", cfg.Lookups.Machines)
	lookups.Get("/statuses", cfg.Lookups.Statuses)

	var writeGuards, deleteGuards []fiber.Handler
	if cfg.AuthMiddleware != nil {
		writeGuards = []fiber.Handler{
			cfg.AuthMiddleware.Handle,
			auth.RequireRole(domain.OperatorRoleTechnician, domain.OperatorRoleSupervisor),
		}
		deleteGuards = []fiber.Handler{
			cfg.AuthMiddleware.Handle,
			auth.RequireRole(domain.OperatorRoleSupervisor),
		}
	}

	category := api.Group("/:category")
	category.Get("/tickets", cfg.Tickets.List)
	category.Get("/tickets/:id", cfg.Tickets.Get)
	category.Post("/tickets", with(writeGuards, cfg.Tickets.Create)...)
	category.Put("/tickets/:id", with(writeGuards, cfg.Tickets.Update)...)
	category.Delete("/tickets/:id", with(deleteGuards, cfg.Tickets.Delete)...)

	category.Get("/reports", cfg.Reports.Periods)
	category.Get("/reports/:year/:month", cfg.Reports.Download)
}

func with(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
