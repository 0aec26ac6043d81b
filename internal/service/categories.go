package service

import (
	"github.com/spec-kit/failtrack/internal/config"
	"github.com/spec-kit/failtrack/internal/domain"
)

// CategoryConfigs builds the per-category engine settings from runtime configuration.
//
// Maintenance exports report updated_at as the resolution date while tooling reports
// closed_at. Both behaviors are kept as they were observed in production.
// TODO: confirm with production whether maintenance should report closed_at too.
func CategoryConfigs(cfg *config.Config) map[domain.Category]domain.CategoryConfig {
	order := domain.ListOrder(cfg.Tickets.ListOrder)
	return map[domain.Category]domain.CategoryConfig{
		domain.CategoryMaintenance: {
			Category:               domain.CategoryMaintenance,
			InitialStatusID:        cfg.Tickets.InitialStatusID,
			TerminalStatusID:       cfg.Tickets.TerminalStatusID,
			ResolvedTimestampField: domain.ResolvedFromUpdatedAt,
			Locale:                 cfg.Maintenance.Locale,
			DeleteEnabled:          cfg.Maintenance.DeleteEnabled,
			InitUpdatedAtOnCreate:  cfg.Maintenance.InitUpdatedAtOnCreate,
			ListOrder:              order,
			Title:                  "Mantenimiento",
			SheetName:              "Mantenimiento",
			ExportHeaders: [8]string{
				"ID", "Solicitante", "Línea", "Máquina", "Descripción Falla",
				"Estatus", "Fecha Creación", "Fecha Solución",
			},
		},
		domain.CategoryTooling: {
			Category:               domain.CategoryTooling,
			InitialStatusID:        cfg.Tickets.InitialStatusID,
			TerminalStatusID:       cfg.Tickets.TerminalStatusID,
			ResolvedTimestampField: domain.ResolvedFromClosedAt,
			Locale:                 cfg.Tooling.Locale,
			DeleteEnabled:          cfg.Tooling.DeleteEnabled,
			InitUpdatedAtOnCreate:  cfg.Tooling.InitUpdatedAtOnCreate,
			ListOrder:              order,
			Title:                  "Herramentales",
			SheetName:              "Herramentales",
			ExportHeaders: [8]string{
				"ID", "Solicitante", "Línea", "Máquina", "Descripción falla",
				"Estatus", "Fecha creación", "Fecha de solución",
			},
		},
	}
}
