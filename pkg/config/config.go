package config

import "time"

// Config is the root configuration for the ladder runtime.
type Config struct {
	// Storage configures the subject store backend.
	Storage StorageConfig `yaml:"storage"`

	// Policy configures the promotion ladder source.
	Policy PolicyConfig `yaml:"policy"`

	// Disclosure configures the disclosure coordinator and sweeper.
	Disclosure DisclosureConfig `yaml:"disclosure"`

	// Audit configures the audit trail.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry configures logging, metrics, and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StorageConfig configures the subject store.
type StorageConfig struct {
	// Backend selects the store implementation: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path. Ignored for memory.
	Path string `yaml:"path"`
}

// PolicyConfig configures where the promotion ladder comes from.
type PolicyConfig struct {
	// Mode selects the ladder source: "default", "file", or "git".
	Mode string `yaml:"mode"`

	// FilePath is the ladder YAML file path for file mode.
	FilePath string `yaml:"file_path"`

	// Watch enables hot-reloading the ladder file on change.
	Watch bool `yaml:"watch"`

	// WatchDebounce is the delay between a file event and the reload.
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// Git configures the git ladder source for git mode.
	Git GitConfig `yaml:"git"`
}

// GitConfig configures the git-backed ladder source.
type GitConfig struct {
	// Repository is the clone URL.
	Repository string `yaml:"repository"`

	// Branch is the branch to track.
	Branch string `yaml:"branch"`

	// Path is the ladder file path inside the repository.
	Path string `yaml:"path"`

	// LocalPath is the working directory for the clone.
	LocalPath string `yaml:"local_path"`

	// PollInterval is how often to poll for upstream changes.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Username and Token authenticate HTTP clones. Both empty means
	// anonymous access.
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

// DisclosureConfig configures the disclosure coordinator.
type DisclosureConfig struct {
	// PendingTTL is how long a disclosure request may wait for its
	// oracle callback before the sweeper expires it.
	PendingTTL time.Duration `yaml:"pending_ttl"`

	// SweepSchedule is a cron expression for sweep runs. Empty disables
	// the sweeper.
	SweepSchedule string `yaml:"sweep_schedule"`
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	// Enabled enables audit recording.
	Enabled bool `yaml:"enabled"`

	// Backend selects the audit storage: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path. Ignored for memory.
	Path string `yaml:"path"`

	// AsyncBuffer is the recorder's channel buffer size.
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for one storage write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// TelemetryConfig configures logging, metrics, and tracing.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format selects the handler: "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled enables the metrics HTTP endpoint.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics server address.
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled enables OTLP trace export.
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	Endpoint string `yaml:"endpoint"`

	// SampleRatio is the trace sampling ratio in [0, 1].
	SampleRatio float64 `yaml:"sample_ratio"`
}
