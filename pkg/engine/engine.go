package engine

import (
	"covalent-hq/ladder/pkg/fhe"
	"covalent-hq/ladder/pkg/policy"
)

// Career path codes returned by RecommendCareerPath. The codes themselves
// are not secret; which one a subject receives is, until disclosed.
const (
	PathManagement uint64 = 1 // strongest attribute: experience
	PathTechnical  uint64 = 2 // strongest attribute: skill level
	PathResearch   uint64 = 3 // strongest attribute: education
	PathOperations uint64 = 4 // strongest attribute: performance
)

// Result is the encrypted outcome of one full simulation.
type Result struct {
	// Level is the encrypted rank of the highest ladder level whose four
	// requirements the subject meets, 1 if none are met.
	Level fhe.Handle

	// NextLevel is Level + 1. It may exceed the ladder's highest rank;
	// lookups against it then resolve to the zero requirement vector.
	NextLevel fhe.Handle

	// Probability is the promotion probability toward NextLevel.
	Probability fhe.Handle

	// Time is the estimated time to promotion, saturated at fhe.MaxValue
	// when the probability term floors to zero.
	Time fhe.Handle
}

// Engine evaluates career computations over encrypted handles. It is pure:
// no engine method mutates any input or carries state between calls beyond
// the cached encrypted constants.
type Engine struct {
	eval fhe.Evaluator

	// Frequently used encrypted constants, encoded once.
	zero    fhe.Handle
	one     fhe.Handle
	hundred fhe.Handle
}

// New creates an engine over the given evaluator.
func New(eval fhe.Evaluator) *Engine {
	return &Engine{
		eval:    eval,
		zero:    eval.Encrypt(0),
		one:     eval.Encrypt(1),
		hundred: eval.Encrypt(100),
	}
}

// Simulate runs the full evaluation: level, next level, promotion
// probability, and time to promotion, all in one pass over a ladder
// snapshot.
func (e *Engine) Simulate(attrs fhe.AttributeVector, ladder *policy.Ladder) Result {
	level := e.DetermineLevel(attrs, ladder)
	nextLevel := e.eval.Add(level, e.one)
	nextReqs := e.lookupRequirements(nextLevel, ladder)
	prob := e.PromotionProbability(attrs, nextReqs)
	time := e.TimeToPromotion(attrs, nextReqs, prob)

	return Result{
		Level:       level,
		NextLevel:   nextLevel,
		Probability: prob,
		Time:        time,
	}
}

// DetermineLevel returns the encrypted rank of the highest level whose four
// requirements are all met, defaulting to rank 1 when none are.
//
// The selection is a fold from lowest to highest rank:
//
//	result = select(meetsAll(level), rank(level), result)
//
// so the last matching level wins. Every level is evaluated
// unconditionally; no per-level boolean is ever decrypted to steer control
// flow.
func (e *Engine) DetermineLevel(attrs fhe.AttributeVector, ladder *policy.Ladder) fhe.Handle {
	result := e.one

	for _, lvl := range ladder.Levels() {
		met := e.meetsAll(attrs, lvl.Requirements)
		result = e.eval.Select(met, e.eval.Encrypt(uint64(lvl.Rank)), result)
	}

	return result
}

// PromotionProbability computes 100 - totalGap/4, where totalGap is the sum
// of the four per-attribute requirement gaps, each clamped at zero (an
// attribute exceeding its requirement contributes nothing rather than a
// wrapped negative).
//
// The output is not bounded to [0,100] by construction: a total gap above
// 400 wraps the unsigned subtraction. Callers that need a probability-like
// range clamp it themselves; the lifecycle service stores the raw value.
func (e *Engine) PromotionProbability(attrs fhe.AttributeVector, target policy.Requirements) fhe.Handle {
	total := e.clampSub(target.Experience, attrs.Experience)
	total = e.eval.Add(total, e.clampSub(target.SkillLevel, attrs.SkillLevel))
	total = e.eval.Add(total, e.clampSub(target.Performance, attrs.Performance))
	total = e.eval.Add(total, e.clampSub(target.Education, attrs.Education))

	return e.eval.Sub(e.hundred, e.eval.Div(total, e.eval.Encrypt(4)))
}

// TimeToPromotion estimates time to reach the target level:
//
//	base = clamp(targetExpReq - experience) / 2
//	time = base / (probability / 100)
//
// With integer division the denominator floors to zero for any probability
// below 100, and the division then saturates to fhe.MaxValue. That
// saturation is the defined output for "no meaningful estimate", not a
// failure.
func (e *Engine) TimeToPromotion(attrs fhe.AttributeVector, target policy.Requirements, probability fhe.Handle) fhe.Handle {
	expGap := e.clampSub(target.Experience, attrs.Experience)
	base := e.eval.Div(expGap, e.eval.Encrypt(2))
	return e.eval.Div(base, e.eval.Div(probability, e.hundred))
}

// NextLevelRequirements resolves the requirement vector for an encrypted
// rank through the weighted oblivious lookup. A rank beyond the ladder
// yields the zero vector.
func (e *Engine) NextLevelRequirements(rank fhe.Handle, ladder *policy.Ladder) policy.Requirements {
	return e.lookupRequirements(rank, ladder)
}

// DevelopmentAreas returns the four clamped requirement gaps toward the
// target level, one encrypted handle per attribute. A zero gap means the
// attribute already satisfies the target.
func (e *Engine) DevelopmentAreas(attrs fhe.AttributeVector, target policy.Requirements) policy.Requirements {
	return policy.Requirements{
		Experience:  e.clampSub(target.Experience, attrs.Experience),
		SkillLevel:  e.clampSub(target.SkillLevel, attrs.SkillLevel),
		Performance: e.clampSub(target.Performance, attrs.Performance),
		Education:   e.clampSub(target.Education, attrs.Education),
	}
}

// RecommendCareerPath selects one of the four path codes by the subject's
// strongest attribute. Ties break by the fixed priority
// experience > skill > education > performance, which is exactly the
// evaluation order of the nested selects below.
func (e *Engine) RecommendCareerPath(attrs fhe.AttributeVector) fhe.Handle {
	max := e.max2(e.max2(attrs.Experience, attrs.SkillLevel), e.max2(attrs.Education, attrs.Performance))

	research := e.eval.Select(e.eval.Eq(max, attrs.Education),
		e.eval.Encrypt(PathResearch), e.eval.Encrypt(PathOperations))
	technical := e.eval.Select(e.eval.Eq(max, attrs.SkillLevel),
		e.eval.Encrypt(PathTechnical), research)
	return e.eval.Select(e.eval.Eq(max, attrs.Experience),
		e.eval.Encrypt(PathManagement), technical)
}

// GrowthPotential blends the simulated promotion probability with the
// subject's skill level: (probability + skill) / 2, capped at 100.
func (e *Engine) GrowthPotential(attrs fhe.AttributeVector, probability fhe.Handle) fhe.Handle {
	blended := e.eval.Div(e.eval.Add(probability, attrs.SkillLevel), e.eval.Encrypt(2))
	return e.clamp100(blended)
}

// LateralMoveViability returns a 0/1-valued handle for "a lateral move is
// viable": skill level at least 50 and experience at least 3.
func (e *Engine) LateralMoveViability(attrs fhe.AttributeVector) fhe.Handle {
	return e.eval.And(
		e.eval.Ge(attrs.SkillLevel, e.eval.Encrypt(50)),
		e.eval.Ge(attrs.Experience, e.eval.Encrypt(3)),
	)
}

// CareerSatisfaction scores satisfaction from performance and the simulated
// promotion probability: (performance*20 + probability) / 2, capped at 100.
func (e *Engine) CareerSatisfaction(attrs fhe.AttributeVector, probability fhe.Handle) fhe.Handle {
	perf := e.eval.Mul(attrs.Performance, e.eval.Encrypt(20))
	return e.clamp100(e.eval.Div(e.eval.Add(perf, probability), e.eval.Encrypt(2)))
}

// RetirementEligibility returns the encrypted number of experience years
// remaining until the 30-year eligibility mark, clamped at zero once
// reached.
func (e *Engine) RetirementEligibility(attrs fhe.AttributeVector) fhe.Handle {
	return e.clampSub(e.eval.Encrypt(30), attrs.Experience)
}

// RetentionRisk scores departure risk from the simulated record:
// (100-probability)/2 plus a quarter of the (capped) time to promotion,
// capped at 100. A saturated time estimate pins the risk at the cap.
func (e *Engine) RetentionRisk(probability, timeToPromotion fhe.Handle) fhe.Handle {
	stalled := e.eval.Div(e.clampSub(e.hundred, probability), e.eval.Encrypt(2))
	waiting := e.eval.Div(e.clamp100(timeToPromotion), e.eval.Encrypt(4))
	return e.clamp100(e.eval.Add(stalled, waiting))
}
