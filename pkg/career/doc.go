// Package career owns the per-subject lifecycle around the evaluation
// engine: encrypted profiles, one-shot simulation records, and disclosed
// results.
//
// Each subject moves through exactly one forward path:
//
//	Created → Simulated → DecryptionRequested → Revealed
//
// Simulation populates the record exactly once (`simulated` is a one-way
// latch; there is no reset), and disclosure commits exactly once
// (`revealed` likewise). Every operation validates its preconditions before
// any write, so a failed call leaves the subject exactly as it found it.
//
// Writes to one subject are serialized by striped per-subject locks;
// operations on different subjects proceed in parallel.
package career
