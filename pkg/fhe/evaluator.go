package fhe

// Evaluator performs homomorphic arithmetic, comparison, and oblivious
// selection over ciphertext handles. Every method is data-oblivious: the
// sequence of backend operations it triggers depends only on the structure
// of the computation, never on the encrypted values.
//
// Implementations must be safe for concurrent use.
type Evaluator interface {
	// Encrypt encodes a plaintext constant into the encrypted domain and
	// returns a fresh handle for it.
	Encrypt(value uint64) Handle

	// Add returns a handle for a + b.
	Add(a, b Handle) Handle

	// Sub returns a handle for a - b. The subtraction is modular: when
	// b exceeds a the result wraps. Callers that need a clamped gap must
	// guard with Ge and Select; the evaluation engine never lets a wrapped
	// difference reach an output.
	Sub(a, b Handle) Handle

	// Mul returns a handle for a * b, saturating at MaxValue.
	Mul(a, b Handle) Handle

	// Div returns a handle for a / b (integer division, floor). A zero
	// divisor saturates the result to MaxValue rather than trapping.
	Div(a, b Handle) Handle

	// Ge returns a 0/1-valued handle for a >= b.
	Ge(a, b Handle) Handle

	// Gt returns a 0/1-valued handle for a > b.
	Gt(a, b Handle) Handle

	// Eq returns a 0/1-valued handle for a == b.
	Eq(a, b Handle) Handle

	// And returns a 0/1-valued handle for the conjunction of two
	// 0/1-valued handles.
	And(a, b Handle) Handle

	// Select returns a handle for the oblivious ternary: the value of a
	// when cond holds 1, the value of b when cond holds 0. Both arms are
	// always materialized; nothing about cond is revealed.
	Select(cond, a, b Handle) Handle
}
