package disclosure

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"covalent-hq/ladder/pkg/audit"
	"covalent-hq/ladder/pkg/career"
	"covalent-hq/ladder/pkg/fhe"
)

// resultWords is the number of positional words in a disclosed payload:
// promotion probability, time to promotion, next level rank, in that
// order.
const resultWords = 3

// pendingEntry tracks one outstanding disclosure request.
type pendingEntry struct {
	SubjectID   string
	Owner       string
	RequestedAt time.Time
}

// Coordinator brokers disclosure requests between the lifecycle service
// and the decryption oracle.
type Coordinator struct {
	svc     *career.Service
	oracle  fhe.Oracle
	auditor *audit.Recorder
	metrics *Metrics
	logger  *slog.Logger

	// mu guards pending. It is never held across a service or oracle
	// call, so it cannot deadlock against the per-subject write locks.
	mu      sync.Mutex
	pending map[string]pendingEntry
}

// NewCoordinator creates a disclosure coordinator. The auditor and
// metrics may be nil.
func NewCoordinator(svc *career.Service, oracle fhe.Oracle, auditor *audit.Recorder, metrics *Metrics, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		svc:     svc,
		oracle:  oracle,
		auditor: auditor,
		metrics: metrics,
		logger:  logger.With("component", "disclosure.coordinator"),
		pending: make(map[string]pendingEntry),
	}
}

// Request submits the subject's encrypted result words to the oracle and
// moves the subject to the decryption-requested status. It returns the
// oracle's request identifier. A second request while one is outstanding
// fails with ErrDisclosurePending; a request after the result was revealed
// fails with career.ErrAlreadyRevealed.
func (c *Coordinator) Request(ctx context.Context, caller, subjectID string) (string, error) {
	var requestID string
	var owner string

	err := c.svc.UpdateSubject(ctx, subjectID, func(subject *career.Subject) error {
		if subject.Owner != caller {
			return career.ErrNotOwner
		}
		switch subject.Status {
		case career.StatusRevealed:
			return career.ErrAlreadyRevealed
		case career.StatusDecryptionRequested:
			return ErrDisclosurePending
		}
		if !subject.Simulation.Simulated {
			return career.ErrNotSimulated
		}

		handles := []fhe.Handle{
			subject.Simulation.Probability,
			subject.Simulation.Time,
			subject.Simulation.NextLevel,
		}
		id, err := c.oracle.RequestDisclosure(ctx, handles)
		if err != nil {
			return err
		}

		requestID = id
		owner = subject.Owner
		subject.Status = career.StatusDecryptionRequested
		return nil
	})
	if err != nil {
		c.metrics.RecordRequest(requestResult(err))
		c.audit(ctx, subjectID, caller, audit.ActionDisclosureRequested, err.Error(), "")
		return "", err
	}

	c.mu.Lock()
	c.pending[requestID] = pendingEntry{
		SubjectID:   subjectID,
		Owner:       owner,
		RequestedAt: time.Now(),
	}
	c.mu.Unlock()

	c.metrics.RecordRequest("ok")
	c.auditRequest(ctx, subjectID, caller, requestID)

	c.logger.Info("disclosure requested",
		"subject_id", subjectID,
		"request_id", requestID,
	)

	return requestID, nil
}

// HandleCallback processes the oracle's disclosure callback. The proof is
// verified before anything else: a failed verification returns
// ErrProofInvalid and leaves both the pending entry and the subject
// untouched. On success the positional payload is decoded, the disclosure
// record committed, the subject marked revealed, and the pending entry
// consumed; a second callback for the same request fails with
// ErrUnknownRequest.
func (c *Coordinator) HandleCallback(ctx context.Context, requestID string, clear, proof []byte) error {
	c.mu.Lock()
	entry, ok := c.pending[requestID]
	c.mu.Unlock()
	if !ok {
		c.metrics.RecordCallback("unknown_request")
		return ErrUnknownRequest
	}

	if !c.oracle.VerifyProof(requestID, clear, proof) {
		c.metrics.RecordCallback("proof_invalid")
		c.audit(ctx, entry.SubjectID, "oracle", audit.ActionProofRejected, "proof_invalid", requestID)
		c.logger.Warn("disclosure proof rejected",
			"subject_id", entry.SubjectID,
			"request_id", requestID,
		)
		return ErrProofInvalid
	}

	words, err := fhe.DecodeWords(clear, resultWords)
	if err != nil {
		c.metrics.RecordCallback("malformed_payload")
		c.audit(ctx, entry.SubjectID, "oracle", audit.ActionProofRejected, "malformed_payload", requestID)
		return err
	}

	// Consume the entry only after verification succeeded. A concurrent
	// callback that raced past the lookup above loses here.
	c.mu.Lock()
	_, ok = c.pending[requestID]
	if ok {
		delete(c.pending, requestID)
	}
	c.mu.Unlock()
	if !ok {
		c.metrics.RecordCallback("unknown_request")
		return ErrUnknownRequest
	}

	err = c.svc.UpdateSubject(ctx, entry.SubjectID, func(subject *career.Subject) error {
		if subject.Status == career.StatusRevealed {
			return career.ErrAlreadyRevealed
		}
		subject.Disclosure = career.DisclosureRecord{
			Probability: words[0],
			Time:        words[1],
			NextLevel:   words[2],
			Revealed:    true,
		}
		subject.Status = career.StatusRevealed
		subject.RevealedAt = time.Now()
		return nil
	})
	if err != nil {
		// Storage failure: re-park the entry so the callback can be
		// retried.
		if !errors.Is(err, career.ErrAlreadyRevealed) {
			c.mu.Lock()
			c.pending[requestID] = entry
			c.mu.Unlock()
		}
		c.metrics.RecordCallback("commit_failed")
		return err
	}

	c.metrics.RecordCallback("ok")
	if c.auditor != nil {
		_ = c.auditor.Record(ctx, &audit.Record{
			SubjectID:   entry.SubjectID,
			Actor:       "oracle",
			Action:      audit.ActionDisclosureCommitted,
			Outcome:     "ok",
			RequestID:   requestID,
			PayloadHash: audit.HashContent(clear),
		})
	}

	c.logger.Info("disclosure committed",
		"subject_id", entry.SubjectID,
		"request_id", requestID,
	)

	return nil
}

// ExpireBefore drops pending entries requested before the cutoff and
// reverts their subjects to the simulated status so the owner can request
// again. It returns the number of entries expired. A late callback for an
// expired request fails with ErrUnknownRequest.
func (c *Coordinator) ExpireBefore(ctx context.Context, cutoff time.Time) int {
	c.mu.Lock()
	var expired []string
	for id, entry := range c.pending {
		if entry.RequestedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	entries := make(map[string]pendingEntry, len(expired))
	for _, id := range expired {
		entries[id] = c.pending[id]
		delete(c.pending, id)
	}
	c.mu.Unlock()

	for id, entry := range entries {
		err := c.svc.UpdateSubject(ctx, entry.SubjectID, func(subject *career.Subject) error {
			if subject.Status != career.StatusDecryptionRequested {
				return nil
			}
			subject.Status = career.StatusSimulated
			return nil
		})
		if err != nil {
			c.logger.Error("failed to revert expired disclosure request",
				"subject_id", entry.SubjectID,
				"request_id", id,
				"error", err,
			)
			continue
		}
		c.audit(ctx, entry.SubjectID, "sweeper", audit.ActionRequestExpired, "expired", id)
		c.logger.Info("disclosure request expired",
			"subject_id", entry.SubjectID,
			"request_id", id,
		)
	}

	c.metrics.RecordExpired(len(entries))
	return len(entries)
}

// PendingCount returns the number of outstanding disclosure requests.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// auditRequest records a successful disclosure request.
func (c *Coordinator) auditRequest(ctx context.Context, subjectID, actor, requestID string) {
	c.audit(ctx, subjectID, actor, audit.ActionDisclosureRequested, "ok", requestID)
}

// audit writes one audit record if a recorder is attached. The disclosed
// payload itself is never recorded; committed disclosures carry only its
// hash.
func (c *Coordinator) audit(ctx context.Context, subjectID, actor string, action audit.Action, outcome, requestID string) {
	if c.auditor == nil {
		return
	}
	_ = c.auditor.Record(ctx, &audit.Record{
		SubjectID: subjectID,
		Actor:     actor,
		Action:    action,
		Outcome:   outcome,
		RequestID: requestID,
	})
}

// requestResult maps a request error to a metrics label.
func requestResult(err error) string {
	switch {
	case errors.Is(err, career.ErrNotOwner):
		return "not_owner"
	case errors.Is(err, career.ErrNotSimulated):
		return "not_simulated"
	case errors.Is(err, career.ErrAlreadyRevealed):
		return "already_revealed"
	case errors.Is(err, ErrDisclosurePending):
		return "pending"
	default:
		return "error"
	}
}
