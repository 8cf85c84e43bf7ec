package config

import "time"

// Default values for configuration fields.
const (
	// Storage defaults
	DefaultStorageBackend = "memory"
	DefaultStoragePath    = "data/subjects.db"

	// Policy defaults
	DefaultPolicyMode      = "default"
	DefaultPolicyFilePath  = "./ladder.yaml"
	DefaultPolicyWatch     = false
	DefaultWatchDebounce   = 250 * time.Millisecond
	DefaultGitBranch       = "main"
	DefaultGitPath         = "ladder.yaml"
	DefaultGitLocalPath    = "data/ladder-repo"
	DefaultGitPollInterval = 60 * time.Second

	// Disclosure defaults
	DefaultPendingTTL    = 15 * time.Minute
	DefaultSweepSchedule = "*/5 * * * *"

	// Audit defaults
	DefaultAuditEnabled      = true
	DefaultAuditBackend      = "sqlite"
	DefaultAuditPath         = "data/audit.db"
	DefaultAuditAsyncBuffer  = 1000
	DefaultAuditWriteTimeout = 5 * time.Second

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "json"
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultTracingEnabled       = false
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingSampleRatio   = 1.0
)

// ApplyDefaults fills unset configuration fields with default values.
// Explicitly set values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}

	if cfg.Policy.Mode == "" {
		cfg.Policy.Mode = DefaultPolicyMode
	}
	if cfg.Policy.FilePath == "" {
		cfg.Policy.FilePath = DefaultPolicyFilePath
	}
	if cfg.Policy.WatchDebounce == 0 {
		cfg.Policy.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.Policy.Git.Branch == "" {
		cfg.Policy.Git.Branch = DefaultGitBranch
	}
	if cfg.Policy.Git.Path == "" {
		cfg.Policy.Git.Path = DefaultGitPath
	}
	if cfg.Policy.Git.LocalPath == "" {
		cfg.Policy.Git.LocalPath = DefaultGitLocalPath
	}
	if cfg.Policy.Git.PollInterval == 0 {
		cfg.Policy.Git.PollInterval = DefaultGitPollInterval
	}

	if cfg.Disclosure.PendingTTL == 0 {
		cfg.Disclosure.PendingTTL = DefaultPendingTTL
	}
	if cfg.Disclosure.SweepSchedule == "" {
		cfg.Disclosure.SweepSchedule = DefaultSweepSchedule
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.AsyncBuffer == 0 {
		cfg.Audit.AsyncBuffer = DefaultAuditAsyncBuffer
	}
	if cfg.Audit.WriteTimeout == 0 {
		cfg.Audit.WriteTimeout = DefaultAuditWriteTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}

// DefaultConfig returns a fully-defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{
		Audit: AuditConfig{Enabled: DefaultAuditEnabled},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{Enabled: DefaultTracingEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
