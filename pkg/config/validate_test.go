package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantField string
	}{
		{
			name:      "unknown storage backend",
			mutate:    func(cfg *Config) { cfg.Storage.Backend = "postgres" },
			wantField: "storage.backend",
		},
		{
			name: "sqlite storage without path",
			mutate: func(cfg *Config) {
				cfg.Storage.Backend = "sqlite"
				cfg.Storage.Path = ""
			},
			wantField: "storage.path",
		},
		{
			name:      "unknown policy mode",
			mutate:    func(cfg *Config) { cfg.Policy.Mode = "http" },
			wantField: "policy.mode",
		},
		{
			name: "file mode without path",
			mutate: func(cfg *Config) {
				cfg.Policy.Mode = "file"
				cfg.Policy.FilePath = ""
			},
			wantField: "policy.file_path",
		},
		{
			name:      "git mode without repository",
			mutate:    func(cfg *Config) { cfg.Policy.Mode = "git" },
			wantField: "policy.git.repository",
		},
		{
			name:      "non-positive pending TTL",
			mutate:    func(cfg *Config) { cfg.Disclosure.PendingTTL = -time.Minute },
			wantField: "disclosure.pending_ttl",
		},
		{
			name:      "invalid sweep schedule",
			mutate:    func(cfg *Config) { cfg.Disclosure.SweepSchedule = "every 5 minutes" },
			wantField: "disclosure.sweep_schedule",
		},
		{
			name:      "unknown audit backend",
			mutate:    func(cfg *Config) { cfg.Audit.Backend = "kafka" },
			wantField: "audit.backend",
		},
		{
			name:      "unknown log level",
			mutate:    func(cfg *Config) { cfg.Telemetry.Logging.Level = "verbose" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "unknown log format",
			mutate:    func(cfg *Config) { cfg.Telemetry.Logging.Format = "logfmt" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "metrics enabled without address",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Metrics.Enabled = true
				cfg.Telemetry.Metrics.ListenAddress = ""
			},
			wantField: "telemetry.metrics.listen_address",
		},
		{
			name: "tracing enabled without endpoint",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Tracing.Enabled = true
				cfg.Telemetry.Tracing.Endpoint = ""
			},
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "sample ratio out of range",
			mutate:    func(cfg *Config) { cfg.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on field %q, got %v", tt.wantField, verr.Errors)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = "postgres"
	cfg.Policy.Mode = "http"
	cfg.Telemetry.Logging.Level = "verbose"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("Expected 3 collected errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
	if !strings.Contains(verr.Error(), "3 errors") {
		t.Errorf("Expected aggregate message to mention count, got %q", verr.Error())
	}
}

func TestFieldError_Error(t *testing.T) {
	fe := FieldError{Field: "storage.backend", Message: "unknown backend"}
	if got := fe.Error(); got != "storage.backend: unknown backend" {
		t.Errorf("Unexpected field error string %q", got)
	}
}
