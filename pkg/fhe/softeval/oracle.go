package softeval

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"covalent-hq/ladder/pkg/fhe"
)

// Oracle implements fhe.Oracle against a softeval Evaluator. Requests are
// parked until Resolve is called, which models the asynchronous gap between
// submitting a disclosure and the oracle calling back: tests and the demo
// CLI drive Resolve explicitly and feed its output into the disclosure
// coordinator's callback surface.
//
// Proofs are HMAC-SHA256 tags over requestID || clear under a per-oracle
// key, so a tampered payload or a replay under a different request fails
// verification.
type Oracle struct {
	eval *Evaluator
	key  []byte

	mu      sync.Mutex
	pending map[string][]fhe.Handle
}

// NewOracle creates an oracle bound to the given evaluator with a random
// proof key.
func NewOracle(eval *Evaluator) *Oracle {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; there is no reasonable way to continue.
		panic(fmt.Sprintf("softeval: reading entropy: %v", err))
	}

	return &Oracle{
		eval:    eval,
		key:     key,
		pending: make(map[string][]fhe.Handle),
	}
}

// RequestDisclosure parks the handles under a fresh request identifier.
func (o *Oracle) RequestDisclosure(ctx context.Context, handles []fhe.Handle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(handles) == 0 {
		return "", fmt.Errorf("no handles to disclose")
	}

	requestID := uuid.New().String()

	o.mu.Lock()
	o.pending[requestID] = append([]fhe.Handle(nil), handles...)
	o.mu.Unlock()

	return requestID, nil
}

// Resolve produces the clear payload and proof for a parked request. The
// request stays parked so a test can exercise duplicate-callback handling;
// the coordinator's one-shot pending table is what prevents re-application.
func (o *Oracle) Resolve(requestID string) (clear, proof []byte, err error) {
	o.mu.Lock()
	handles, ok := o.pending[requestID]
	o.mu.Unlock()

	if !ok {
		return nil, nil, fmt.Errorf("unknown disclosure request %q", requestID)
	}

	values := make([]uint64, len(handles))
	for i, h := range handles {
		v, err := o.eval.Reveal(h)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving request %q: %w", requestID, err)
		}
		values[i] = v
	}

	clear = fhe.EncodeWords(values)
	return clear, o.sign(requestID, clear), nil
}

// VerifyProof reports whether proof is a valid tag over requestID and clear.
func (o *Oracle) VerifyProof(requestID string, clear, proof []byte) bool {
	return hmac.Equal(o.sign(requestID, clear), proof)
}

// PendingCount returns the number of unresolved requests (for tests).
func (o *Oracle) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.pending)
}

func (o *Oracle) sign(requestID string, clear []byte) []byte {
	mac := hmac.New(sha256.New, o.key)
	mac.Write([]byte(requestID))
	mac.Write(clear)
	return mac.Sum(nil)
}
