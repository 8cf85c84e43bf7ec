package storage

import (
	"context"
	"testing"
	"time"

	"covalent-hq/ladder/pkg/audit"
)

func TestMemoryStorage_StoreAndQuery(t *testing.T) {
	mem := NewMemoryStorage()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []*audit.Record{
		{ID: "r1", SubjectID: "s1", Actor: "alice", Action: audit.ActionProfileCreated, Outcome: "ok", RecordedAt: base},
		{ID: "r2", SubjectID: "s1", Actor: "alice", Action: audit.ActionSimulationRun, Outcome: "ok", RecordedAt: base.Add(time.Minute)},
		{ID: "r3", SubjectID: "s2", Actor: "bob", Action: audit.ActionProfileCreated, Outcome: "ok", RecordedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		if err := mem.Store(ctx, r); err != nil {
			t.Fatalf("Store() failed: %v", err)
		}
	}

	if mem.Count() != 3 {
		t.Errorf("Expected 3 records, got %d", mem.Count())
	}

	got, err := mem.BySubject(ctx, "s1")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records for s1, got %d", len(got))
	}
	if got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("Expected insertion order r1,r2, got %s,%s", got[0].ID, got[1].ID)
	}

	empty, err := mem.BySubject(ctx, "unknown")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no records for unknown subject, got %d", len(empty))
	}
}

func TestMemoryStorage_CopiesRecords(t *testing.T) {
	mem := NewMemoryStorage()
	ctx := context.Background()

	original := &audit.Record{ID: "r1", SubjectID: "s1", Outcome: "ok"}
	if err := mem.Store(ctx, original); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	// Mutating the caller's record must not reach the stored copy.
	original.Outcome = "mutated"

	got, err := mem.BySubject(ctx, "s1")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if got[0].Outcome != "ok" {
		t.Errorf("Stored record aliased caller's memory: outcome %q", got[0].Outcome)
	}

	// And mutating a returned record must not reach storage.
	got[0].Outcome = "mutated again"
	again, _ := mem.BySubject(ctx, "s1")
	if again[0].Outcome != "ok" {
		t.Errorf("Returned record aliased storage: outcome %q", again[0].Outcome)
	}
}
