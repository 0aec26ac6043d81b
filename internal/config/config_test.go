package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Tickets.TerminalStatusID != 3 {
		t.Errorf("TerminalStatusID = %d, want 3", cfg.Tickets.TerminalStatusID)
	}
	if cfg.Tickets.InitialStatusID != 1 {
		t.Errorf("InitialStatusID = %d, want 1", cfg.Tickets.InitialStatusID)
	}
	if cfg.Tickets.ListOrder != "desc" {
		t.Errorf("ListOrder = %q, want desc", cfg.Tickets.ListOrder)
	}
	if cfg.Maintenance.DeleteEnabled {
		t.Error("maintenance delete should be disabled by default")
	}
	if !cfg.Tooling.DeleteEnabled {
		t.Error("tooling delete should be enabled by default")
	}
	if cfg.Maintenance.Locale == cfg.Tooling.Locale {
		t.Errorf("categories should default to distinct locales, both %q", cfg.Tooling.Locale)
	}
	if got := cfg.App.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}
	if cfg.App.AllowedOrigins != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %q", cfg.App.AllowedOrigins)
	}
	if cfg.App.InstanceID == "" {
		t.Error("InstanceID should default to a generated id")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TICKET_TERMINAL_STATUS_ID", "7")
	t.Setenv("LIST_ORDER", "ASC")
	t.Setenv("TOOLING_DELETE_ENABLED", "false")
	t.Setenv("MAINTENANCE_INIT_UPDATED_AT", "false")
	t.Setenv("REPORT_TIMEZONE", "America/Mexico_City")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://frontend.local , https://ops.example.com,")
	t.Setenv("APP_INSTANCE_ID", "api-2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tickets.TerminalStatusID != 7 {
		t.Errorf("TerminalStatusID = %d, want 7", cfg.Tickets.TerminalStatusID)
	}
	if cfg.Tickets.ListOrder != "asc" {
		t.Errorf("ListOrder = %q, want asc", cfg.Tickets.ListOrder)
	}
	if cfg.Tooling.DeleteEnabled {
		t.Error("tooling delete should be disabled")
	}
	if cfg.Maintenance.InitUpdatedAtOnCreate {
		t.Error("maintenance InitUpdatedAtOnCreate should be false")
	}
	if cfg.Reports.Location().String() != "America/Mexico_City" {
		t.Errorf("Location() = %s", cfg.Reports.Location())
	}
	if cfg.App.AllowedOrigins != "http://frontend.local,https://ops.example.com" {
		t.Errorf("AllowedOrigins = %q", cfg.App.AllowedOrigins)
	}
	if cfg.App.InstanceID != "api-2" {
		t.Errorf("InstanceID = %q", cfg.App.InstanceID)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "terminal status", key: "TICKET_TERMINAL_STATUS_ID", val: "closed"},
		{name: "list order", key: "LIST_ORDER", val: "random"},
		{name: "timezone", key: "REPORT_TIMEZONE", val: "Mars/Olympus"},
		{name: "redis db", key: "REDIS_DB", val: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
