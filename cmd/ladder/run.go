package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"covalent-hq/ladder/pkg/audit"
	auditstorage "covalent-hq/ladder/pkg/audit/storage"
	"covalent-hq/ladder/pkg/career"
	"covalent-hq/ladder/pkg/career/store"
	"covalent-hq/ladder/pkg/config"
	"covalent-hq/ladder/pkg/disclosure"
	"covalent-hq/ladder/pkg/fhe/softeval"
	"covalent-hq/ladder/pkg/policy"
	policygit "covalent-hq/ladder/pkg/policy/git"
	"covalent-hq/ladder/pkg/telemetry/logging"
	"covalent-hq/ladder/pkg/telemetry/tracing"
)

// policySourceActor is the internal identity ladder reloads run under.
const policySourceActor = "policy-source"

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the evaluation runtime",
	Long: `Start the evaluation runtime with the specified configuration.

The runtime loads the promotion ladder from the configured source, opens
the subject store and audit trail, starts the disclosure sweeper, and
serves Prometheus metrics.

Examples:
  # Start with default config
  ladder run

  # Start with custom config
  ladder run --config /etc/ladder/config.yaml

  # Validate config without starting
  ladder run --dry-run`,
	RunE: runRuntime,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.Setup(&cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer tracer.Shutdown(context.Background())

	// Evaluation capability and oracle. The soft evaluator keeps the
	// ciphertext table in-process; handles crossing the API are opaque
	// either way.
	eval := softeval.NewEvaluator()
	oracle := softeval.NewOracle(eval)

	// Promotion ladder.
	loader := policy.NewLoader(eval)
	ladder, err := loadLadder(ctx, cfg, loader)
	if err != nil {
		return err
	}
	registry := policy.NewRegistry(ladder, func(caller string) bool {
		return caller == policySourceActor
	}, logger)

	logger.Info("promotion ladder loaded",
		"mode", cfg.Policy.Mode,
		"levels", ladder.MaxRank(),
	)

	// Subject store.
	subjectStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer subjectStore.Close()

	// Audit trail.
	var auditor *audit.Recorder
	if cfg.Audit.Enabled {
		auditStore, err := openAuditStorage(cfg)
		if err != nil {
			return err
		}
		defer auditStore.Close()

		auditor = audit.NewRecorder(auditStore, &audit.Config{
			Enabled:      true,
			AsyncBuffer:  cfg.Audit.AsyncBuffer,
			WriteTimeout: cfg.Audit.WriteTimeout,
		})
		defer auditor.Close()
	}

	// Lifecycle service and disclosure coordinator.
	svc := career.NewService(eval, registry, subjectStore, career.NewMetrics(), logger)
	coordinator := disclosure.NewCoordinator(svc, oracle, auditor, disclosure.NewMetrics(), logger)

	sweeper := disclosure.NewSweeper(coordinator, &disclosure.SweeperConfig{
		PendingTTL: cfg.Disclosure.PendingTTL,
		Schedule:   cfg.Disclosure.SweepSchedule,
	})
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	// Ladder hot-reload sources.
	if cfg.Policy.Mode == "file" && cfg.Policy.Watch {
		watcher := policy.NewWatcher(&policy.WatcherConfig{
			Path:             cfg.Policy.FilePath,
			DebounceInterval: cfg.Policy.WatchDebounce,
		}, loader, registry, policySourceActor, logger)
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("ladder watcher stopped", "error", err)
			}
		}()
	}
	if cfg.Policy.Mode == "git" {
		source, err := newGitSource(cfg, loader, logger)
		if err != nil {
			return err
		}
		go func() {
			err := source.Watch(ctx, func(l *policy.Ladder) {
				if err := registry.Replace(policySourceActor, l); err != nil {
					logger.Error("failed to apply ladder from git", "error", err)
				}
			})
			if err != nil {
				logger.Error("git ladder source stopped", "error", err)
			}
		}()
	}

	// Metrics endpoint.
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, promhttp.Handler())
		server := &http.Server{
			Addr:         cfg.Telemetry.Metrics.ListenAddress,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("runtime started",
		"storage_backend", cfg.Storage.Backend,
		"audit_enabled", cfg.Audit.Enabled,
		"pending_ttl", cfg.Disclosure.PendingTTL,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// loadConfig loads the configuration file named by the --config flag. The
// default path falls back to built-in defaults when the file does not
// exist; an explicit path must exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if cfgFile == "config.yaml" {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("configuration file %q does not exist", cfgFile)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// loadLadder loads the initial ladder from the configured source.
func loadLadder(ctx context.Context, cfg *config.Config, loader *policy.Loader) (*policy.Ladder, error) {
	switch cfg.Policy.Mode {
	case "default":
		return policy.DefaultLadder(loader.Evaluator()), nil
	case "file":
		return loader.LoadFile(cfg.Policy.FilePath)
	case "git":
		source, err := newGitSource(cfg, loader, nil)
		if err != nil {
			return nil, err
		}
		return source.Load(ctx)
	default:
		return nil, fmt.Errorf("unknown policy mode %q", cfg.Policy.Mode)
	}
}

// newGitSource builds the git ladder source from configuration.
func newGitSource(cfg *config.Config, loader *policy.Loader, logger *slog.Logger) (*policygit.Source, error) {
	return policygit.NewSource(&policygit.Config{
		Repository:   cfg.Policy.Git.Repository,
		Branch:       cfg.Policy.Git.Branch,
		Path:         cfg.Policy.Git.Path,
		LocalPath:    cfg.Policy.Git.LocalPath,
		PollInterval: cfg.Policy.Git.PollInterval,
		Username:     cfg.Policy.Git.Username,
		Token:        cfg.Policy.Git.Token,
	}, loader, logger)
}

// openStore opens the configured subject store backend.
func openStore(cfg *config.Config) (career.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.Storage.Path})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openAuditStorage opens the configured audit storage backend.
func openAuditStorage(cfg *config.Config) (audit.Storage, error) {
	switch cfg.Audit.Backend {
	case "memory":
		return auditstorage.NewMemoryStorage(), nil
	case "sqlite":
		sqliteCfg := auditstorage.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.Audit.Path
		return auditstorage.NewSQLiteStorage(sqliteCfg)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}
