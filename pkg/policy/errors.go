package policy

import (
	"errors"
	"fmt"
)

// ErrNotAuthorized indicates a ladder mutation was attempted by a caller
// the administrator predicate rejected. The registry is left unchanged.
var ErrNotAuthorized = errors.New("caller is not a policy administrator")

// ValidationError indicates a ladder or level failed structural validation.
type ValidationError struct {
	Rank    int
	Message string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	if e.Rank > 0 {
		return fmt.Sprintf("ladder level %d: %s", e.Rank, e.Message)
	}
	return fmt.Sprintf("ladder: %s", e.Message)
}

// LoadError indicates a ladder file could not be read or parsed.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loading ladder %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("loading ladder %q: %s", e.Path, e.Message)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
