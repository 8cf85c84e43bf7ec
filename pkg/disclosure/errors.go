package disclosure

import "errors"

var (
	// ErrUnknownRequest indicates a callback arrived for a request
	// identifier with no pending entry: never issued, already consumed,
	// or expired by the sweeper.
	ErrUnknownRequest = errors.New("unknown disclosure request")

	// ErrProofInvalid indicates the oracle's proof did not verify against
	// the request identifier and clear payload. The pending entry and the
	// subject are left untouched.
	ErrProofInvalid = errors.New("disclosure proof verification failed")

	// ErrDisclosurePending indicates a disclosure request is already
	// outstanding for the subject.
	ErrDisclosurePending = errors.New("disclosure request already outstanding")
)
