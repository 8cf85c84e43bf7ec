package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"covalent-hq/ladder/pkg/audit"
)

func newTestSQLiteStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(&SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "audit.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStorage() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return s
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	s := newTestSQLiteStorage(t)
	ctx := context.Background()

	recordedAt := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.UTC)
	record := &audit.Record{
		ID:          "r1",
		SubjectID:   "s1",
		Actor:       "oracle",
		Action:      audit.ActionDisclosureCommitted,
		Outcome:     "ok",
		RequestID:   "req-1",
		PayloadHash: audit.HashContent([]byte("payload")),
		RecordedAt:  recordedAt,
	}
	if err := s.Store(ctx, record); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := s.BySubject(ctx, "s1")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.ID != record.ID || r.Actor != record.Actor || r.Action != record.Action {
		t.Errorf("Record fields did not survive round trip: %+v", r)
	}
	if r.RequestID != "req-1" || r.PayloadHash != record.PayloadHash {
		t.Errorf("Disclosure fields did not survive round trip: %+v", r)
	}
	if !r.RecordedAt.Equal(recordedAt) {
		t.Errorf("Expected timestamp %v, got %v", recordedAt, r.RecordedAt)
	}
}

func TestSQLiteStorage_BySubjectOrdering(t *testing.T) {
	s := newTestSQLiteStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	// Insert out of chronological order; BySubject sorts oldest first.
	inserts := []struct {
		id string
		at time.Time
	}{
		{"r-late", base.Add(2 * time.Minute)},
		{"r-early", base},
		{"r-mid", base.Add(time.Minute)},
	}
	for _, in := range inserts {
		err := s.Store(ctx, &audit.Record{
			ID:         in.id,
			SubjectID:  "s1",
			Actor:      "alice",
			Action:     audit.ActionSimulationRun,
			Outcome:    "ok",
			RecordedAt: in.at,
		})
		if err != nil {
			t.Fatalf("Store(%s) failed: %v", in.id, err)
		}
	}

	got, err := s.BySubject(ctx, "s1")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	want := []string{"r-early", "r-mid", "r-late"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(&SQLiteConfig{Path: path, MaxOpenConns: 2, MaxIdleConns: 1, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSQLiteStorage() failed: %v", err)
	}
	err = s.Store(ctx, &audit.Record{
		ID:         "r1",
		SubjectID:  "s1",
		Actor:      "alice",
		Action:     audit.ActionProfileCreated,
		Outcome:    "ok",
		RecordedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := NewSQLiteStorage(&SQLiteConfig{Path: path, MaxOpenConns: 2, MaxIdleConns: 1, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.BySubject(ctx, "s1")
	if err != nil {
		t.Fatalf("BySubject() after reopen failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("Record did not survive reopen: %+v", got)
	}
}
