package store

import (
	"context"
	"sync"

	"covalent-hq/ladder/pkg/career"
)

// MemoryStore implements Store with an in-memory map. Records do not
// survive process restart; use the SQLite backend when they must.
type MemoryStore struct {
	mu       sync.RWMutex
	subjects map[string]*career.Subject
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subjects: make(map[string]*career.Subject),
	}
}

// Put inserts or replaces a subject record.
func (s *MemoryStore) Put(ctx context.Context, subject *career.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects[subject.ID] = subject.Clone()
	return nil
}

// Get returns the subject record, or career.ErrSubjectNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*career.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[id]
	if !ok {
		return nil, career.ErrSubjectNotFound
	}
	return subject.Clone(), nil
}

// Count returns the number of stored subjects.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.subjects)), nil
}

// Close clears the map.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects = make(map[string]*career.Subject)
	return nil
}
