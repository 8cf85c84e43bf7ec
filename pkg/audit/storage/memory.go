package storage

import (
	"context"
	"sync"

	"covalent-hq/ladder/pkg/audit"
)

// MemoryStorage is an in-memory audit storage backend.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*audit.Record
}

// NewMemoryStorage creates an empty in-memory audit storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends one record.
func (s *MemoryStorage) Store(ctx context.Context, record *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

// BySubject returns records for a subject in insertion order.
func (s *MemoryStorage) BySubject(ctx context.Context, subjectID string) ([]*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*audit.Record
	for _, r := range s.records {
		if r.SubjectID == subjectID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Count returns the total number of stored records.
func (s *MemoryStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}
