package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"covalent-hq/ladder/pkg/career"
	"covalent-hq/ladder/pkg/fhe"
)

const subjectSchema = `
CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,

    -- Attribute vector: ciphertext handle refs only
    attr_experience TEXT NOT NULL,
    attr_skill_level TEXT NOT NULL,
    attr_performance TEXT NOT NULL,
    attr_education TEXT NOT NULL,

    status TEXT NOT NULL,

    -- Simulation record (handle refs; empty until simulated)
    sim_probability TEXT NOT NULL DEFAULT '',
    sim_time TEXT NOT NULL DEFAULT '',
    sim_next_level TEXT NOT NULL DEFAULT '',
    simulated BOOLEAN NOT NULL DEFAULT 0,

    -- Disclosure record (plaintext once revealed)
    disc_probability INTEGER NOT NULL DEFAULT 0,
    disc_time INTEGER NOT NULL DEFAULT 0,
    disc_next_level INTEGER NOT NULL DEFAULT 0,
    revealed BOOLEAN NOT NULL DEFAULT 0,

    created_at TIMESTAMP NOT NULL,
    simulated_at TIMESTAMP,
    revealed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_subjects_owner ON subjects(owner);
CREATE INDEX IF NOT EXISTS idx_subjects_status ON subjects(status);
`

// SQLiteConfig configures the SQLite subject store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) a SQLite subject store.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, career.NewStorageError("sqlite", "open", fmt.Errorf("db path cannot be empty"))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, career.NewStorageError("sqlite", "open", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, career.NewStorageError("sqlite", "enable_wal", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, career.NewStorageError("sqlite", "set_busy_timeout", err)
	}
	if _, err := db.Exec(subjectSchema); err != nil {
		db.Close()
		return nil, career.NewStorageError("sqlite", "create_schema", err)
	}

	logger := slog.Default().With("component", "career.store.sqlite")
	logger.Info("subject store initialized", "path", cfg.Path)

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Put inserts or replaces a subject record.
func (s *SQLiteStore) Put(ctx context.Context, subject *career.Subject) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO subjects (
			id, owner,
			attr_experience, attr_skill_level, attr_performance, attr_education,
			status,
			sim_probability, sim_time, sim_next_level, simulated,
			disc_probability, disc_time, disc_next_level, revealed,
			created_at, simulated_at, revealed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subject.ID, subject.Owner,
		subject.Attributes.Experience.Ref(),
		subject.Attributes.SkillLevel.Ref(),
		subject.Attributes.Performance.Ref(),
		subject.Attributes.Education.Ref(),
		string(subject.Status),
		subject.Simulation.Probability.Ref(),
		subject.Simulation.Time.Ref(),
		subject.Simulation.NextLevel.Ref(),
		subject.Simulation.Simulated,
		subject.Disclosure.Probability,
		subject.Disclosure.Time,
		subject.Disclosure.NextLevel,
		subject.Disclosure.Revealed,
		subject.CreatedAt,
		nullableTime(subject.SimulatedAt),
		nullableTime(subject.RevealedAt),
	)
	if err != nil {
		return career.NewStorageError("sqlite", "put", err)
	}
	return nil
}

// Get returns the subject record, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*career.Subject, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner,
			attr_experience, attr_skill_level, attr_performance, attr_education,
			status,
			sim_probability, sim_time, sim_next_level, simulated,
			disc_probability, disc_time, disc_next_level, revealed,
			created_at, simulated_at, revealed_at
		FROM subjects WHERE id = ?`, id)

	var subject career.Subject
	var expRef, skillRef, perfRef, eduRef string
	var status string
	var simProb, simTime, simNext string
	var simulatedAt, revealedAt sql.NullTime

	err := row.Scan(
		&subject.ID, &subject.Owner,
		&expRef, &skillRef, &perfRef, &eduRef,
		&status,
		&simProb, &simTime, &simNext, &subject.Simulation.Simulated,
		&subject.Disclosure.Probability, &subject.Disclosure.Time,
		&subject.Disclosure.NextLevel, &subject.Disclosure.Revealed,
		&subject.CreatedAt, &simulatedAt, &revealedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, career.ErrSubjectNotFound
	}
	if err != nil {
		return nil, career.NewStorageError("sqlite", "get", err)
	}

	subject.Attributes = fhe.AttributeVector{
		Experience:  fhe.NewHandle(expRef),
		SkillLevel:  fhe.NewHandle(skillRef),
		Performance: fhe.NewHandle(perfRef),
		Education:   fhe.NewHandle(eduRef),
	}
	subject.Status = career.Status(status)
	subject.Simulation.Probability = fhe.NewHandle(simProb)
	subject.Simulation.Time = fhe.NewHandle(simTime)
	subject.Simulation.NextLevel = fhe.NewHandle(simNext)
	if simulatedAt.Valid {
		subject.SimulatedAt = simulatedAt.Time
	}
	if revealedAt.Valid {
		subject.RevealedAt = revealedAt.Time
	}

	return &subject, nil
}

// Count returns the number of stored subjects.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&count); err != nil {
		return 0, career.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
