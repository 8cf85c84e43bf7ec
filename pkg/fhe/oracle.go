package fhe

import (
	"context"
	"encoding/binary"
	"fmt"
)

// WordSize is the byte width of one disclosed value on the wire. Disclosed
// payloads are a positional sequence of big-endian 64-bit words; the encode
// order at request time and the decode order at callback time must match
// exactly, because nothing on the wire is tagged.
const WordSize = 8

// Oracle is the trusted decryption capability. Disclosure is asynchronous:
// RequestDisclosure returns an opaque request identifier immediately, and
// the oracle later invokes the caller's callback surface with the clear
// words and a proof binding them to that identifier.
type Oracle interface {
	// RequestDisclosure submits a batch of handles for decryption and
	// returns the request identifier the eventual callback will carry.
	RequestDisclosure(ctx context.Context, handles []Handle) (string, error)

	// VerifyProof reports whether proof binds clear to requestID. A
	// disclosed value must never be committed on a failed verification.
	VerifyProof(requestID string, clear, proof []byte) bool
}

// EncodeWords packs clear values into the positional wire form.
func EncodeWords(values []uint64) []byte {
	buf := make([]byte, len(values)*WordSize)
	for i, v := range values {
		binary.BigEndian.PutUint64(buf[i*WordSize:], v)
	}
	return buf
}

// DecodeWords unpacks a positional clear payload, enforcing the expected
// word count.
func DecodeWords(clear []byte, want int) ([]uint64, error) {
	if len(clear) != want*WordSize {
		return nil, fmt.Errorf("clear payload is %d bytes, want %d words (%d bytes)",
			len(clear), want, want*WordSize)
	}
	values := make([]uint64, want)
	for i := range values {
		values[i] = binary.BigEndian.Uint64(clear[i*WordSize:])
	}
	return values, nil
}
