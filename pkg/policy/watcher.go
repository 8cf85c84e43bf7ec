package policy

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the ladder file watcher.
type WatcherConfig struct {
	// Path is the ladder file to watch.
	Path string

	// DebounceInterval is the quiet period after a change before the
	// reload fires, collapsing editor write bursts into one reload.
	// Default: 250ms
	DebounceInterval time.Duration
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig(path string) *WatcherConfig {
	return &WatcherConfig{
		Path:             path,
		DebounceInterval: 250 * time.Millisecond,
	}
}

// Watcher reloads the ladder file on change and pushes the result into a
// registry. Reloads that fail validation are logged and skipped; the
// registry keeps serving the last good ladder.
type Watcher struct {
	config   *WatcherConfig
	loader   *Loader
	registry *Registry
	caller   string
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a ladder file watcher. The caller identity is used for
// the registry's administrator check on each reload.
func NewWatcher(config *WatcherConfig, loader *Loader, registry *Registry, caller string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		config:   config,
		loader:   loader,
		registry: registry,
		caller:   caller,
		logger:   logger.With("component", "policy.watcher"),
	}
}

// Watch blocks until the context is cancelled, reloading the ladder when
// the watched file changes.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: editors replace files by rename, which drops a
	// watch placed on the file itself.
	dir := filepath.Dir(w.config.Path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	w.logger.Info("ladder watcher started",
		"path", w.config.Path,
		"debounce", w.config.DebounceInterval,
	)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.config.Path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.config.DebounceInterval)
				timerC = timer.C
			} else {
				timer.Reset(w.config.DebounceInterval)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	ladder, err := w.loader.LoadFile(w.config.Path)
	if err != nil {
		w.logger.Error("ladder reload failed, keeping previous ladder",
			"path", w.config.Path,
			"error", err,
		)
		return
	}

	if err := w.registry.Replace(w.caller, ladder); err != nil {
		w.logger.Error("ladder replace rejected",
			"path", w.config.Path,
			"error", err,
		)
		return
	}

	w.logger.Info("ladder reloaded",
		"path", w.config.Path,
		"levels", ladder.MaxRank(),
	)
}
