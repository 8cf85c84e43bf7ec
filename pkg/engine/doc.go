// Package engine computes career evaluations over encrypted attribute
// vectors without ever leaving the encrypted domain.
//
// Every function here is oblivious: there is no data-dependent control
// flow on secret values. Where a plaintext implementation would branch
// ("if the subject meets the level, take its rank"), the engine computes
// both arms and blends them with an encrypted selector, so the sequence of
// homomorphic operations is fixed by the ladder shape alone and reveals
// nothing about the inputs. Lookups keyed by an encrypted rank
// are realized as weighted sums across all candidate levels for the same
// reason.
//
// Arithmetic edge cases are defined numeric behaviors, not errors:
// requirement gaps clamp at zero before they are summed, and division by an
// encrypted zero saturates to fhe.MaxValue. Encrypted computation cannot
// raise an exception mid-expression.
package engine
