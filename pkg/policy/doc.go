// Package policy models the career ladder: an ordered sequence of levels,
// each a disclosed title plus four encrypted attribute thresholds.
//
// Thresholds live in the encrypted domain. Ladder files declare them as
// plaintext integers, and the loader encrypts them through the configured
// evaluator at load time; from that point on the runtime only ever handles
// ciphertext references. Ranks are contiguous starting at 1.
//
// The Registry holds the current ladder and gates mutation behind an
// injected administrator predicate. A ladder update never reaches back into
// simulation records that were committed under an earlier ladder: the
// evaluation engine always works from an immutable snapshot.
package policy
