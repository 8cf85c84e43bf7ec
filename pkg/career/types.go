package career

import (
	"time"

	"covalent-hq/ladder/pkg/fhe"
)

// Status is a subject's position in the lifecycle. Transitions only move
// forward; no operation regresses a subject to an earlier status (the
// disclosure sweeper's expiry of an abandoned request back to Simulated is
// the single, deliberate exception, and it never undoes a committed
// result).
type Status string

const (
	// StatusCreated: profile exists, simulation not yet run.
	StatusCreated Status = "created"

	// StatusSimulated: simulation record populated, nothing disclosed.
	StatusSimulated Status = "simulated"

	// StatusDecryptionRequested: a disclosure request is outstanding.
	StatusDecryptionRequested Status = "decryption_requested"

	// StatusRevealed: the disclosure record is committed. Terminal.
	StatusRevealed Status = "revealed"
)

// SimulationRecord is the encrypted outcome of a subject's simulation.
// Populated exactly once; Simulated transitions false→true exactly once.
type SimulationRecord struct {
	Probability fhe.Handle
	Time        fhe.Handle
	NextLevel   fhe.Handle
	Simulated   bool
}

// DisclosureRecord is the disclosed (plaintext) counterpart of a
// simulation record. Revealed transitions false→true exactly once, gated
// on Simulated.
type DisclosureRecord struct {
	Probability uint64
	Time        uint64
	NextLevel   uint64
	Revealed    bool
}

// Subject is one employee's full record: ownership, encrypted attributes,
// and the lifecycle state around them.
type Subject struct {
	ID    string
	Owner string

	// Attributes is immutable once a simulation based on it has started;
	// no mutation API exists after creation.
	Attributes fhe.AttributeVector

	Status     Status
	Simulation SimulationRecord
	Disclosure DisclosureRecord

	CreatedAt   time.Time
	SimulatedAt time.Time
	RevealedAt  time.Time
}

// Clone returns a deep-enough copy for handing outside the store; handles
// are value types, so a shallow struct copy suffices.
func (s *Subject) Clone() *Subject {
	out := *s
	return &out
}
