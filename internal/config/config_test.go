package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_PORT", "SERVER_HOST", "DB_DRIVER", "DB_PATH", "DATABASE_URL",
		"CORS_ALLOWED_ORIGINS", "FALLBACK_MONTHS", "SNAPSHOT_SCHEDULE", "SNAPSHOT_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
		}
		if cfg.Database.DSN() != cfg.Database.Path {
			t.Errorf("Expected sqlite DSN to be the path, got %s", cfg.Database.DSN())
		}
		if cfg.Rollup.FallbackMonths != 24 {
			t.Errorf("Expected 24 fallback months, got %d", cfg.Rollup.FallbackMonths)
		}
		if !cfg.Snapshot.Enabled() {
			t.Error("Expected snapshot job enabled by default")
		}
	})

	t.Run("environment overrides YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := []byte(`
server:
  host: 0.0.0.0
  port: "8080"
database:
  driver: postgres
  url: postgres://file/db
rollup:
  fallback_months: 12
snapshot:
  schedule: "off"
`)
		if err := os.WriteFile(path, yaml, 0o600); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		clearEnv(t)
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Server.Addr != "0.0.0.0:9090" {
			t.Errorf("Expected addr 0.0.0.0:9090, got %s", cfg.Server.Addr)
		}
		if cfg.Database.DSN() != "postgres://file/db" {
			t.Errorf("Expected postgres URL as DSN, got %s", cfg.Database.DSN())
		}
		if cfg.Rollup.FallbackMonths != 12 {
			t.Errorf("Expected 12 fallback months, got %d", cfg.Rollup.FallbackMonths)
		}
		if cfg.Snapshot.Enabled() {
			t.Error("Expected snapshot job disabled")
		}
		want := []string{"https://a.example", "https://b.example"}
		if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
			t.Errorf("Expected origins %v, got %v", want, cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("rejects non-numeric fallback months", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FALLBACK_MONTHS", "lots")

		if _, err := config.Load(); err == nil {
			t.Error("Expected error for non-numeric FALLBACK_MONTHS")
		}
	})
}
