package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append([]string{
		"PORT", "DATA_SOURCE", "SQLITE_PATH", "ENVIRONMENT", "RELOAD_INTERVAL",
	}, hostingMarkers...) {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataSource != SourceDuckDB {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceDuckDB)
	}
	if cfg.SQLitePath != "trendx_bot.db" {
		t.Errorf("SQLitePath = %q, want trendx_bot.db", cfg.SQLitePath)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	if cfg.ReloadInterval != 5*time.Minute {
		t.Errorf("ReloadInterval = %s, want 5m", cfg.ReloadInterval)
	}
}

func TestLoad_HostingMarkerMeansProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("RENDER", "true")
	cfg := Load()

	if !cfg.IsProduction() {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.ReloadInterval != 10*time.Minute {
		t.Errorf("ReloadInterval = %s, want 10m", cfg.ReloadInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("RELOAD_INTERVAL", "30s")
	cfg := Load()

	if cfg.DataSource != SourcePostgres {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourcePostgres)
	}
	if cfg.ReloadInterval != 30*time.Second {
		t.Errorf("ReloadInterval = %s, want 30s", cfg.ReloadInterval)
	}
}

func TestGetDuration_Invalid(t *testing.T) {
	t.Setenv("RELOAD_INTERVAL", "soon")
	if got := getDuration("RELOAD_INTERVAL", time.Minute); got != time.Minute {
		t.Errorf("getDuration(invalid) = %s, want fallback 1m", got)
	}
	t.Setenv("RELOAD_INTERVAL", "-5s")
	if got := getDuration("RELOAD_INTERVAL", time.Minute); got != time.Minute {
		t.Errorf("getDuration(negative) = %s, want fallback 1m", got)
	}
}
