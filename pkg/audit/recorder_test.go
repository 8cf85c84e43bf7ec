package audit_test

import (
	"context"
	"testing"
	"time"

	"covalent-hq/ladder/pkg/audit"
	"covalent-hq/ladder/pkg/audit/storage"
)

func TestRecorder_RecordAndDrain(t *testing.T) {
	mem := storage.NewMemoryStorage()
	recorder := audit.NewRecorder(mem, nil)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		err := recorder.Record(ctx, &audit.Record{
			SubjectID: "subject-1",
			Actor:     "alice",
			Action:    audit.ActionSimulationRun,
			Outcome:   "ok",
		})
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	// Close drains the async channel before returning.
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if mem.Count() != 5 {
		t.Errorf("Expected 5 stored records after Close(), got %d", mem.Count())
	}

	records, err := mem.BySubject(ctx, "subject-1")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected 5 records for subject, got %d", len(records))
	}
	for _, r := range records {
		if r.ID == "" {
			t.Error("Record stored without generated ID")
		}
		if r.RecordedAt.IsZero() {
			t.Error("Record stored without timestamp")
		}
	}
}

func TestRecorder_DisabledIsNoOp(t *testing.T) {
	mem := storage.NewMemoryStorage()
	recorder := audit.NewRecorder(mem, &audit.Config{
		Enabled:      false,
		AsyncBuffer:  10,
		WriteTimeout: time.Second,
	})

	err := recorder.Record(context.Background(), &audit.Record{
		SubjectID: "subject-1",
		Action:    audit.ActionProfileCreated,
	})
	if err != nil {
		t.Fatalf("Record() on disabled recorder failed: %v", err)
	}

	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if mem.Count() != 0 {
		t.Errorf("Disabled recorder stored %d records", mem.Count())
	}
}

func TestRecorder_PreservesExplicitFields(t *testing.T) {
	mem := storage.NewMemoryStorage()
	recorder := audit.NewRecorder(mem, nil)

	recordedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	err := recorder.Record(context.Background(), &audit.Record{
		ID:          "fixed-id",
		SubjectID:   "subject-2",
		Actor:       "oracle",
		Action:      audit.ActionDisclosureCommitted,
		Outcome:     "ok",
		RequestID:   "req-42",
		PayloadHash: audit.HashContent([]byte("payload")),
		RecordedAt:  recordedAt,
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	records, err := mem.BySubject(context.Background(), "subject-2")
	if err != nil {
		t.Fatalf("BySubject() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != "fixed-id" {
		t.Errorf("Expected explicit ID preserved, got %q", got.ID)
	}
	if !got.RecordedAt.Equal(recordedAt) {
		t.Errorf("Expected explicit timestamp preserved, got %v", got.RecordedAt)
	}
	if got.RequestID != "req-42" {
		t.Errorf("Expected request ID preserved, got %q", got.RequestID)
	}
	if got.PayloadHash == "" {
		t.Error("Expected payload hash preserved")
	}
}

func TestHashContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{
			name:    "empty content",
			content: nil,
			want:    "",
		},
		{
			name:    "known digest",
			content: []byte("hello"),
			want:    "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audit.HashContent(tt.content); got != tt.want {
				t.Errorf("HashContent() = %q, want %q", got, tt.want)
			}
		})
	}

	if audit.HashContent([]byte("a")) == audit.HashContent([]byte("b")) {
		t.Error("Distinct payloads hashed to the same digest")
	}
}
