package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
storage:
  backend: sqlite
  path: /var/lib/ladder/subjects.db
policy:
  mode: file
  file_path: ./levels.yaml
  watch: true
disclosure:
  pending_ttl: 30m
  sweep_schedule: "*/10 * * * *"
audit:
  enabled: true
  backend: memory
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != "/var/lib/ladder/subjects.db" {
		t.Errorf("Storage config not loaded: %+v", cfg.Storage)
	}
	if cfg.Policy.Mode != "file" || cfg.Policy.FilePath != "./levels.yaml" || !cfg.Policy.Watch {
		t.Errorf("Policy config not loaded: %+v", cfg.Policy)
	}
	if cfg.Disclosure.PendingTTL != 30*time.Minute {
		t.Errorf("Expected pending TTL 30m, got %v", cfg.Disclosure.PendingTTL)
	}
	if cfg.Disclosure.SweepSchedule != "*/10 * * * *" {
		t.Errorf("Unexpected sweep schedule %q", cfg.Disclosure.SweepSchedule)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("Logging config not loaded: %+v", cfg.Telemetry.Logging)
	}

	// Unset fields pick up defaults.
	if cfg.Policy.WatchDebounce != DefaultWatchDebounce {
		t.Errorf("Expected default watch debounce, got %v", cfg.Policy.WatchDebounce)
	}
	if cfg.Telemetry.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("Expected default metrics address, got %q", cfg.Telemetry.Metrics.ListenAddress)
	}
	if cfg.Telemetry.Tracing.SampleRatio != DefaultTracingSampleRatio {
		t.Errorf("Expected default sample ratio, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "storage: [not a mapping")
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected error for malformed YAML")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfigFile(t, "storage:\n  backend: postgres\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected validation error for unknown backend")
		}
	})
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
storage:
  backend: memory
telemetry:
  logging:
    level: info
`)

	t.Setenv("LADDER_STORAGE_BACKEND", "sqlite")
	t.Setenv("LADDER_STORAGE_PATH", "/tmp/override.db")
	t.Setenv("LADDER_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("LADDER_DISCLOSURE_PENDING_TTL", "45m")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Expected env override for backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/tmp/override.db" {
		t.Errorf("Expected env override for path, got %q", cfg.Storage.Path)
	}
	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("Expected env override for log level, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Disclosure.PendingTTL != 45*time.Minute {
		t.Errorf("Expected env override for pending TTL, got %v", cfg.Disclosure.PendingTTL)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  backend: memory\n")

	t.Setenv("LADDER_STORAGE_BACKEND", "postgres")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("Expected validation error for invalid env override")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
	if cfg.Storage.Backend != DefaultStorageBackend {
		t.Errorf("Expected default backend %q, got %q", DefaultStorageBackend, cfg.Storage.Backend)
	}
	if !cfg.Audit.Enabled {
		t.Error("Expected audit enabled by default")
	}
	if cfg.Audit.Backend != DefaultAuditBackend {
		t.Errorf("Expected default audit backend %q, got %q", DefaultAuditBackend, cfg.Audit.Backend)
	}
	if cfg.Disclosure.SweepSchedule != DefaultSweepSchedule {
		t.Errorf("Unexpected default sweep schedule %q", cfg.Disclosure.SweepSchedule)
	}
}
