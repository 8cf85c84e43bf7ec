package policy

import (
	"log/slog"
	"sync"
)

// AdminFunc reports whether a caller may mutate the ladder. Authorization
// is an explicit predicate handed to the registry rather than ambient
// state, so every mutation names the identity it was checked against.
type AdminFunc func(caller string) bool

// Registry holds the current ladder and serializes mutation against it.
// Reads return immutable snapshots; an in-flight evaluation is never
// affected by a concurrent update, and committed simulation records are
// never rewritten retroactively.
type Registry struct {
	mu        sync.RWMutex
	ladder    *Ladder
	isAdmin   AdminFunc
	logger    *slog.Logger
	updateSeq uint64
}

// NewRegistry creates a registry with an initial ladder and administrator
// predicate. A nil predicate denies all mutation.
func NewRegistry(ladder *Ladder, isAdmin AdminFunc, logger *slog.Logger) *Registry {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		ladder:  ladder,
		isAdmin: isAdmin,
		logger:  logger.With("component", "policy.registry"),
	}
}

// Snapshot returns the current ladder. The ladder is immutable; callers may
// hold the snapshot for the duration of an evaluation.
func (r *Registry) Snapshot() *Ladder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ladder
}

// UpdateLevel replaces one level's requirements and title. The caller must
// pass the administrator predicate; the rank must already exist (level edits
// never change the ladder shape, only Replace does).
func (r *Registry) UpdateLevel(caller string, rank int, reqs Requirements, title string) error {
	if !r.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if title == "" {
		return &ValidationError{Rank: rank, Message: "level title is empty"}
	}
	if !reqs.IsComplete() {
		return &ValidationError{Rank: rank, Message: "level requirement vector is incomplete"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ladder.Level(rank); !ok {
		return &ValidationError{Rank: rank, Message: "rank does not exist"}
	}

	levels := r.ladder.Levels()
	levels[rank-1] = Level{Rank: rank, Title: title, Requirements: reqs}

	ladder, err := NewLadder(levels)
	if err != nil {
		return err
	}
	r.ladder = ladder
	r.updateSeq++

	r.logger.Info("ladder level updated",
		"caller", caller,
		"rank", rank,
		"title", title,
	)

	return nil
}

// Replace swaps in a whole new ladder, for hot reload from a watched file
// or git source. The caller must pass the administrator predicate.
func (r *Registry) Replace(caller string, ladder *Ladder) error {
	if !r.isAdmin(caller) {
		return ErrNotAuthorized
	}

	r.mu.Lock()
	r.ladder = ladder
	r.updateSeq++
	r.mu.Unlock()

	r.logger.Info("ladder replaced",
		"caller", caller,
		"levels", ladder.MaxRank(),
	)

	return nil
}

// UpdateCount returns the number of mutations applied (for tests and
// introspection).
func (r *Registry) UpdateCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.updateSeq
}
