package career

import (
	"context"
	"errors"
	"fmt"
)

// ErrSubjectNotFound indicates no subject record exists for the given ID.
var ErrSubjectNotFound = errors.New("subject not found")

// Store persists subject records. Implementations live in the store
// subpackage and must be safe for concurrent use; serialization of writes
// to the same subject is the Service's job, not the store's.
type Store interface {
	// Put inserts or replaces a subject record.
	Put(ctx context.Context, subject *Subject) error

	// Get returns the subject record, or ErrSubjectNotFound.
	Get(ctx context.Context, id string) (*Subject, error)

	// Count returns the number of stored subjects.
	Count(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with the backend name and the
// operation that failed.
type StorageError struct {
	Backend string
	Op      string
	Cause   error
}

// NewStorageError creates a storage error.
func NewStorageError(backend, op string, cause error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Cause: cause}
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage: %s: %v", e.Backend, e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
