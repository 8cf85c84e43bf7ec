// Package disclosure coordinates the controlled reveal of simulation
// results.
//
// The coordinator brokers between the lifecycle service and the threshold
// decryption oracle. A disclosure request parks the subject's encrypted
// result words with the oracle and records a pending entry keyed by the
// oracle's request identifier. When the oracle calls back with the clear
// words and a proof, the coordinator verifies the proof against the
// request identifier first; only on success does it decode the positional
// payload, commit the disclosure record, and mark the subject revealed.
// A failed verification mutates nothing.
//
// Pending entries are one-shot: the first valid callback consumes the
// entry, and any duplicate fails as an unknown request. A cron-driven
// sweeper expires entries whose callback never arrived, reverting the
// subject so the owner can request again.
package disclosure
