package career

import "errors"

// Precondition failures. All are detected before any state mutation; a
// call that returns one of these has changed nothing.
var (
	// ErrNotOwner indicates the caller does not own the subject profile.
	ErrNotOwner = errors.New("caller does not own this subject")

	// ErrAlreadySimulated indicates a simulation was already run for the
	// subject; the record populates exactly once and there is no reset.
	ErrAlreadySimulated = errors.New("subject already simulated")

	// ErrNotSimulated indicates an operation that consumes simulation
	// record fields was invoked before the simulation ran.
	ErrNotSimulated = errors.New("subject not yet simulated")

	// ErrAlreadyRevealed indicates the disclosure record was already
	// committed for the subject.
	ErrAlreadyRevealed = errors.New("subject result already revealed")

	// ErrIncompleteProfile indicates a profile was submitted with one or
	// more missing attribute handles.
	ErrIncompleteProfile = errors.New("attribute vector is incomplete")
)
