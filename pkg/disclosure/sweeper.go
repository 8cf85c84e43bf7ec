package disclosure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SweeperConfig contains configuration for the pending-request sweeper.
type SweeperConfig struct {
	// PendingTTL is how long a disclosure request may wait for its
	// callback before the sweeper expires it.
	// Default: 15 minutes
	PendingTTL time.Duration

	// Schedule is a cron expression for sweep runs.
	// Example: "*/5 * * * *" (every 5 minutes)
	// Empty disables the sweeper.
	Schedule string
}

// DefaultSweeperConfig returns the default sweeper configuration.
func DefaultSweeperConfig() *SweeperConfig {
	return &SweeperConfig{
		PendingTTL: 15 * time.Minute,
		Schedule:   "*/5 * * * *",
	}
}

// Sweeper expires disclosure requests whose oracle callback never
// arrived, on a cron schedule. Expired subjects revert to the simulated
// status so their owner can request disclosure again.
type Sweeper struct {
	coordinator *Coordinator
	config      *SweeperConfig
	cron        *cron.Cron
	mu          sync.Mutex
	logger      *slog.Logger
	running     bool
}

// NewSweeper creates a sweeper for the coordinator's pending requests.
func NewSweeper(coordinator *Coordinator, config *SweeperConfig) *Sweeper {
	if config == nil {
		config = DefaultSweeperConfig()
	}
	return &Sweeper{
		coordinator: coordinator,
		config:      config,
		cron:        cron.New(),
		logger:      slog.Default().With("component", "disclosure.sweeper"),
	}
}

// Start begins scheduled sweeping. If the schedule is empty, Start does
// nothing and returns nil.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.Sweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("disclosure sweeper started",
		"schedule", s.config.Schedule,
		"pending_ttl", s.config.PendingTTL,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Sweep runs one expiry cycle and returns the number of requests expired.
func (s *Sweeper) Sweep(ctx context.Context) int {
	cutoff := time.Now().Add(-s.config.PendingTTL)
	expired := s.coordinator.ExpireBefore(ctx, cutoff)
	if expired > 0 {
		s.logger.Info("sweep completed",
			"expired_count", expired,
		)
	}
	return expired
}

// Stop stops the sweeper and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("disclosure sweeper stopped")
	}
}

// IsRunning reports whether the sweeper is running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
