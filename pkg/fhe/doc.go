// Package fhe defines the encrypted-value capability surface the runtime
// computes against: opaque ciphertext handles, the homomorphic Evaluator
// that operates on them, and the decryption Oracle that turns an encrypted
// result into a disclosed one.
//
// The package deliberately does not implement a cryptographic scheme. It is
// the boundary contract: any backend that can add, compare, and obliviously
// select over ciphertexts, and that can answer disclosure requests with a
// verifiable proof, can sit behind these interfaces. The softeval subpackage
// provides a software emulation for tests and local runs.
//
// Two conventions every backend must honor:
//
//   - Comparison and And results are 0/1-valued handles. Select blends its
//     two arms with such a handle without revealing which arm was taken.
//   - Division by an encrypted zero saturates to MaxValue instead of
//     trapping. Encrypted computation cannot raise an exception
//     mid-expression, so the edge case is a defined numeric output.
package fhe
