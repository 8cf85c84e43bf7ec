package fhe

// MaxValue is the saturation ceiling for encrypted arithmetic. Division by
// an encrypted zero yields a handle holding this value, and backends clamp
// overflowing products to it. The logical plaintext width is 32 bits.
const MaxValue uint64 = 1<<32 - 1

// Handle is an opaque reference to a ciphertext held by an Evaluator
// backend. Handles never expose the plaintext; the only way out of the
// encrypted domain is a disclosure request through an Oracle.
//
// The zero Handle is invalid and refers to no ciphertext.
type Handle struct {
	ref string
}

// NewHandle wraps a backend ciphertext reference. Only Evaluator backends
// and storage layers rehydrating persisted records should call this.
func NewHandle(ref string) Handle {
	return Handle{ref: ref}
}

// Ref returns the stable backend reference for this handle. Storage layers
// persist this string; it carries no information about the plaintext.
func (h Handle) Ref() string {
	return h.ref
}

// IsZero reports whether the handle refers to no ciphertext.
func (h Handle) IsZero() bool {
	return h.ref == ""
}

// AttributeVector is one subject's encrypted attribute set: four
// non-negative integers under encryption. It is immutable once a simulation
// based on it has started; the runtime never mutates one in place.
type AttributeVector struct {
	Experience  Handle
	SkillLevel  Handle
	Performance Handle
	Education   Handle
}

// IsComplete reports whether all four attribute handles are present.
func (v AttributeVector) IsComplete() bool {
	return !v.Experience.IsZero() && !v.SkillLevel.IsZero() &&
		!v.Performance.IsZero() && !v.Education.IsZero()
}
