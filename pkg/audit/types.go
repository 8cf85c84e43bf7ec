package audit

import (
	"context"
	"fmt"
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionProfileCreated      Action = "profile_created"
	ActionSimulationRun       Action = "simulation_run"
	ActionDisclosureRequested Action = "disclosure_requested"
	ActionDisclosureCommitted Action = "disclosure_committed"
	ActionProofRejected       Action = "proof_rejected"
	ActionRequestExpired      Action = "request_expired"
)

// Record is one audit trail entry.
type Record struct {
	// ID is the record's own identifier.
	ID string

	// SubjectID is the subject the action concerned.
	SubjectID string

	// Actor is the identity that triggered the action; the oracle for
	// callback-side actions.
	Actor string

	// Action is what happened.
	Action Action

	// Outcome is "ok" or the failure class.
	Outcome string

	// RequestID is the disclosure request identifier, when relevant.
	RequestID string

	// PayloadHash is the SHA-256 hash of the disclosed clear payload,
	// when relevant. The payload itself is never stored here.
	PayloadHash string

	// RecordedAt is when the record was created.
	RecordedAt time.Time
}

// Storage persists audit records.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// BySubject returns records for a subject, oldest first.
	BySubject(ctx context.Context, subjectID string) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps an audit backend failure.
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
	return fmt.Sprintf("audit %s storage: %s: %v", e.Backend, e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
