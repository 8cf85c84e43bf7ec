package career

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"covalent-hq/ladder/pkg/engine"
	"covalent-hq/ladder/pkg/fhe"
	"covalent-hq/ladder/pkg/policy"
)

// EncryptedProfile is the read-only view of a subject's encrypted
// attributes plus lifecycle position.
type EncryptedProfile struct {
	SubjectID  string
	Attributes fhe.AttributeVector
	Status     Status
}

// Service runs the subject lifecycle: profile creation, the one-shot
// simulation, read-only getters, and the derived computations. Disclosure
// itself belongs to the disclosure coordinator, which mutates subjects
// through UpdateSubject so every write goes through the same per-subject
// serialization.
type Service struct {
	eval     fhe.Evaluator
	engine   *engine.Engine
	registry *policy.Registry
	store    Store
	locks    *subjectLocks
	metrics  *Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewService creates a lifecycle service. metrics may be nil to disable
// instrumentation (tests that register collectors repeatedly).
func NewService(eval fhe.Evaluator, registry *policy.Registry, store Store, metrics *Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		eval:     eval,
		engine:   engine.New(eval),
		registry: registry,
		store:    store,
		locks:    newSubjectLocks(64),
		metrics:  metrics,
		logger:   logger.With("component", "career.service"),
		tracer:   otel.Tracer("covalent-hq/ladder/pkg/career"),
	}
}

// CreateProfile stores a new subject with the given encrypted attribute
// vector and returns its ID. The attribute vector is owned exclusively by
// the creating owner and is immutable from this point on.
func (s *Service) CreateProfile(ctx context.Context, owner string, attrs fhe.AttributeVector) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("owner cannot be empty")
	}
	if !attrs.IsComplete() {
		return "", ErrIncompleteProfile
	}

	subject := &Subject{
		ID:         uuid.New().String(),
		Owner:      owner,
		Attributes: attrs,
		Status:     StatusCreated,
		CreatedAt:  time.Now(),
	}

	if err := s.store.Put(ctx, subject); err != nil {
		return "", err
	}

	s.metrics.RecordProfileCreated()
	s.logger.Info("profile created",
		"subject_id", subject.ID,
		"owner", owner,
	)

	return subject.ID, nil
}

// RunSimulation computes the subject's simulation record against the
// current ladder snapshot. It fires only from Created and populates the
// record exactly once; the whole computation commits atomically or not at
// all.
func (s *Service) RunSimulation(ctx context.Context, caller, subjectID string) error {
	ctx, span := s.tracer.Start(ctx, "career.RunSimulation",
		trace.WithAttributes(attribute.String("subject.id", subjectID)))
	defer span.End()

	mu := s.locks.lock(subjectID)
	defer mu.Unlock()

	subject, err := s.store.Get(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject.Owner != caller {
		return ErrNotOwner
	}
	if subject.Status != StatusCreated {
		s.metrics.RecordSimulation("already_simulated", 0)
		return ErrAlreadySimulated
	}

	ladder := s.registry.Snapshot()

	start := time.Now()
	result := s.engine.Simulate(subject.Attributes, ladder)
	elapsed := time.Since(start)

	subject.Simulation = SimulationRecord{
		Probability: result.Probability,
		Time:        result.Time,
		NextLevel:   result.NextLevel,
		Simulated:   true,
	}
	subject.Status = StatusSimulated
	subject.SimulatedAt = time.Now()

	if err := s.store.Put(ctx, subject); err != nil {
		s.metrics.RecordSimulation("storage_error", 0)
		return err
	}

	s.metrics.RecordSimulation("ok", elapsed.Seconds())
	s.logger.Info("simulation complete",
		"subject_id", subjectID,
		"ladder_levels", ladder.MaxRank(),
		"duration_ms", elapsed.Milliseconds(),
	)

	return nil
}

// Profile returns the subject's encrypted profile view, owner-gated.
func (s *Service) Profile(ctx context.Context, caller, subjectID string) (*EncryptedProfile, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return nil, err
	}
	return &EncryptedProfile{
		SubjectID:  subject.ID,
		Attributes: subject.Attributes,
		Status:     subject.Status,
	}, nil
}

// Simulation returns the subject's encrypted simulation record and its
// populated flag, owner-gated.
func (s *Service) Simulation(ctx context.Context, caller, subjectID string) (SimulationRecord, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return SimulationRecord{}, err
	}
	return subject.Simulation, nil
}

// Disclosed returns the subject's disclosure record and its revealed flag,
// owner-gated.
func (s *Service) Disclosed(ctx context.Context, caller, subjectID string) (DisclosureRecord, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return DisclosureRecord{}, err
	}
	return subject.Disclosure, nil
}

// UpdateSubject runs fn on the subject under its write lock and persists
// the mutation when fn returns nil. The disclosure coordinator's request
// and callback transitions go through here, so every write to one subject
// is serialized regardless of which component issues it. An error from fn
// leaves the stored record untouched.
func (s *Service) UpdateSubject(ctx context.Context, subjectID string, fn func(*Subject) error) error {
	mu := s.locks.lock(subjectID)
	defer mu.Unlock()

	subject, err := s.store.Get(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := fn(subject); err != nil {
		return err
	}
	return s.store.Put(ctx, subject)
}

// Derived computations. All are read-only and idempotent over an unchanged
// simulation record; those that consume record fields require the subject
// to be simulated.

// RecommendCareerPath returns the encrypted path code for the subject's
// strongest attribute.
func (s *Service) RecommendCareerPath(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.RecommendCareerPath(subject.Attributes), nil
}

// DevelopmentAreas returns the encrypted per-attribute gaps toward the
// subject's next level.
func (s *Service) DevelopmentAreas(ctx context.Context, caller, subjectID string) (policy.Requirements, error) {
	subject, err := s.simulatedSubject(ctx, caller, subjectID)
	if err != nil {
		return policy.Requirements{}, err
	}
	target := s.engine.NextLevelRequirements(subject.Simulation.NextLevel, s.registry.Snapshot())
	return s.engine.DevelopmentAreas(subject.Attributes, target), nil
}

// GrowthPotential returns the encrypted growth score.
func (s *Service) GrowthPotential(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.simulatedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.GrowthPotential(subject.Attributes, subject.Simulation.Probability), nil
}

// LateralMoveViability returns the encrypted 0/1 lateral-move verdict.
func (s *Service) LateralMoveViability(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.LateralMoveViability(subject.Attributes), nil
}

// CareerSatisfaction returns the encrypted satisfaction score.
func (s *Service) CareerSatisfaction(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.simulatedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.CareerSatisfaction(subject.Attributes, subject.Simulation.Probability), nil
}

// RetirementEligibility returns the encrypted years remaining to
// eligibility.
func (s *Service) RetirementEligibility(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.RetirementEligibility(subject.Attributes), nil
}

// RetentionRisk returns the encrypted retention-risk score.
func (s *Service) RetentionRisk(ctx context.Context, caller, subjectID string) (fhe.Handle, error) {
	subject, err := s.simulatedSubject(ctx, caller, subjectID)
	if err != nil {
		return fhe.Handle{}, err
	}
	return s.engine.RetentionRisk(subject.Simulation.Probability, subject.Simulation.Time), nil
}

func (s *Service) ownedSubject(ctx context.Context, caller, subjectID string) (*Subject, error) {
	subject, err := s.store.Get(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subject.Owner != caller {
		return nil, ErrNotOwner
	}
	return subject, nil
}

func (s *Service) simulatedSubject(ctx context.Context, caller, subjectID string) (*Subject, error) {
	subject, err := s.ownedSubject(ctx, caller, subjectID)
	if err != nil {
		return nil, err
	}
	if !subject.Simulation.Simulated {
		return nil, ErrNotSimulated
	}
	return subject, nil
}
