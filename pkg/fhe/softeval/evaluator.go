// Package softeval provides a software emulation of the fhe capability
// surface. Ciphertext handles are backed by an in-process table of plaintext
// words, and disclosure proofs are HMAC-SHA256 tags over the request
// identifier and clear payload.
//
// softeval offers no cryptographic confidentiality. It exists so the
// evaluation engine, lifecycle service, and disclosure coordinator can run
// unmodified in tests, local demos, and development environments where a
// real homomorphic backend is unavailable. The oblivious structure of the
// callers is preserved: softeval evaluates both arms of every Select.
package softeval

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"covalent-hq/ladder/pkg/fhe"
)

// Evaluator implements fhe.Evaluator over an in-process plaintext table.
// It is safe for concurrent use.
type Evaluator struct {
	mu     sync.RWMutex
	values map[string]uint64
}

// NewEvaluator creates an empty software evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		values: make(map[string]uint64),
	}
}

// Encrypt encodes a constant into the handle table.
func (e *Evaluator) Encrypt(value uint64) fhe.Handle {
	return e.store(value)
}

// Add returns a handle for a + b, saturating at fhe.MaxValue.
func (e *Evaluator) Add(a, b fhe.Handle) fhe.Handle {
	va, vb := e.resolve(a), e.resolve(b)
	sum := va + vb
	if sum > fhe.MaxValue || sum < va {
		sum = fhe.MaxValue
	}
	return e.store(sum)
}

// Sub returns a handle for a - b. The subtraction is modular, matching the
// fhe.Evaluator contract: callers clamp through Select when a wrapped
// difference would be observable.
func (e *Evaluator) Sub(a, b fhe.Handle) fhe.Handle {
	return e.store(e.resolve(a) - e.resolve(b))
}

// Mul returns a handle for a * b, saturating at fhe.MaxValue.
func (e *Evaluator) Mul(a, b fhe.Handle) fhe.Handle {
	va, vb := e.resolve(a), e.resolve(b)
	if va != 0 && vb > fhe.MaxValue/va {
		return e.store(fhe.MaxValue)
	}
	return e.store(va * vb)
}

// Div returns a handle for a / b. A zero divisor saturates to fhe.MaxValue.
func (e *Evaluator) Div(a, b fhe.Handle) fhe.Handle {
	vb := e.resolve(b)
	if vb == 0 {
		return e.store(fhe.MaxValue)
	}
	return e.store(e.resolve(a) / vb)
}

// Ge returns a 0/1-valued handle for a >= b.
func (e *Evaluator) Ge(a, b fhe.Handle) fhe.Handle {
	return e.storeBool(e.resolve(a) >= e.resolve(b))
}

// Gt returns a 0/1-valued handle for a > b.
func (e *Evaluator) Gt(a, b fhe.Handle) fhe.Handle {
	return e.storeBool(e.resolve(a) > e.resolve(b))
}

// Eq returns a 0/1-valued handle for a == b.
func (e *Evaluator) Eq(a, b fhe.Handle) fhe.Handle {
	return e.storeBool(e.resolve(a) == e.resolve(b))
}

// And returns a 0/1-valued handle for the conjunction of two 0/1-valued
// handles.
func (e *Evaluator) And(a, b fhe.Handle) fhe.Handle {
	return e.storeBool(e.resolve(a) != 0 && e.resolve(b) != 0)
}

// Select returns a when cond holds 1 and b when cond holds 0. Both arms are
// already materialized handles, so nothing about cond leaks through the
// shape of the computation.
func (e *Evaluator) Select(cond, a, b fhe.Handle) fhe.Handle {
	if e.resolve(cond) != 0 {
		return e.store(e.resolve(a))
	}
	return e.store(e.resolve(b))
}

// Reveal returns the plaintext behind a handle. It exists for test
// assertions and for the oracle in this package; production callers go
// through the disclosure protocol instead.
func (e *Evaluator) Reveal(h fhe.Handle) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	v, ok := e.values[h.Ref()]
	if !ok {
		return 0, fmt.Errorf("unknown handle %q", h.Ref())
	}
	return v, nil
}

// Size returns the number of ciphertexts in the table (for tests).
func (e *Evaluator) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.values)
}

func (e *Evaluator) store(value uint64) fhe.Handle {
	ref := uuid.New().String()

	e.mu.Lock()
	e.values[ref] = value
	e.mu.Unlock()

	return fhe.NewHandle(ref)
}

func (e *Evaluator) storeBool(v bool) fhe.Handle {
	if v {
		return e.store(1)
	}
	return e.store(0)
}

func (e *Evaluator) resolve(h fhe.Handle) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	// An unknown or zero handle reads as zero. The lifecycle service
	// validates handle presence at its boundaries, so this only shows up
	// when a caller fabricates a handle by hand.
	return e.values[h.Ref()]
}
