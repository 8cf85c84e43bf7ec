package engine

import (
	"testing"

	"covalent-hq/ladder/pkg/fhe"
	"covalent-hq/ladder/pkg/fhe/softeval"
	"covalent-hq/ladder/pkg/policy"
)

func reveal(t *testing.T, eval *softeval.Evaluator, h fhe.Handle) uint64 {
	t.Helper()
	v, err := eval.Reveal(h)
	if err != nil {
		t.Fatalf("Reveal() failed: %v", err)
	}
	return v
}

func encryptAttrs(eval *softeval.Evaluator, exp, skill, perf, edu uint64) fhe.AttributeVector {
	return fhe.AttributeVector{
		Experience:  eval.Encrypt(exp),
		SkillLevel:  eval.Encrypt(skill),
		Performance: eval.Encrypt(perf),
		Education:   eval.Encrypt(edu),
	}
}

func TestEngine_Simulate(t *testing.T) {
	tests := []struct {
		name                  string
		exp, skill, perf, edu uint64
		wantLevel, wantNext   uint64
		wantProb, wantTime    uint64
	}{
		{
			// Meets every level; the next level is beyond the ladder, so
			// its requirement lookup yields the zero vector: no gaps,
			// probability 100, time 0.
			name: "senior profile tops the ladder",
			exp:  8, skill: 90, perf: 5, edu: 3,
			wantLevel: 3, wantNext: 4,
			wantProb: 100, wantTime: 0,
		},
		{
			// Exactly the junior thresholds. Gaps toward Mid-Level:
			// 2+10+1+1 = 14, 14/4 = 3, probability 97. The probability
			// term floors to zero in the time division, saturating it.
			name: "junior profile",
			exp:  2, skill: 70, perf: 3, edu: 1,
			wantLevel: 1, wantNext: 2,
			wantProb: 97, wantTime: fhe.MaxValue,
		},
		{
			// Meets nothing; level defaults to 1. Gaps toward Mid-Level:
			// 4+80+4+2 = 90, 90/4 = 22, probability 78.
			name: "empty profile defaults to rank 1",
			exp:  0, skill: 0, perf: 0, edu: 0,
			wantLevel: 1, wantNext: 2,
			wantProb: 78, wantTime: fhe.MaxValue,
		},
		{
			name: "mid-level profile",
			exp:  4, skill: 80, perf: 4, edu: 2,
			wantLevel: 2, wantNext: 3,
			wantProb: 97, wantTime: fhe.MaxValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := softeval.NewEvaluator()
			eng := New(eval)
			ladder := policy.DefaultLadder(eval)

			result := eng.Simulate(encryptAttrs(eval, tt.exp, tt.skill, tt.perf, tt.edu), ladder)

			if got := reveal(t, eval, result.Level); got != tt.wantLevel {
				t.Errorf("Level: expected %d, got %d", tt.wantLevel, got)
			}
			if got := reveal(t, eval, result.NextLevel); got != tt.wantNext {
				t.Errorf("NextLevel: expected %d, got %d", tt.wantNext, got)
			}
			if got := reveal(t, eval, result.Probability); got != tt.wantProb {
				t.Errorf("Probability: expected %d, got %d", tt.wantProb, got)
			}
			if got := reveal(t, eval, result.Time); got != tt.wantTime {
				t.Errorf("Time: expected %d, got %d", tt.wantTime, got)
			}
		})
	}
}

func TestEngine_SimulateIsIdempotent(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)
	ladder := policy.DefaultLadder(eval)
	attrs := encryptAttrs(eval, 5, 85, 4, 2)

	first := eng.Simulate(attrs, ladder)
	second := eng.Simulate(attrs, ladder)

	pairs := []struct {
		name string
		a, b fhe.Handle
	}{
		{"Level", first.Level, second.Level},
		{"NextLevel", first.NextLevel, second.NextLevel},
		{"Probability", first.Probability, second.Probability},
		{"Time", first.Time, second.Time},
	}
	for _, p := range pairs {
		if reveal(t, eval, p.a) != reveal(t, eval, p.b) {
			t.Errorf("%s differs between identical simulations", p.name)
		}
	}
}

func TestEngine_PromotionProbabilityIsNotClamped(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)

	// A total gap above 400 wraps the unsigned subtraction; the raw value
	// is stored as computed, not clamped into [0, 100].
	target := policy.Requirements{
		Experience:  eval.Encrypt(1000),
		SkillLevel:  eval.Encrypt(0),
		Performance: eval.Encrypt(0),
		Education:   eval.Encrypt(0),
	}
	attrs := encryptAttrs(eval, 0, 0, 0, 0)

	got := reveal(t, eval, eng.PromotionProbability(attrs, target))
	if got <= 100 {
		t.Errorf("Expected wrapped probability above 100, got %d", got)
	}
}

func TestEngine_RecommendCareerPath(t *testing.T) {
	tests := []struct {
		name                  string
		exp, skill, perf, edu uint64
		want                  uint64
	}{
		{"experience strongest", 90, 10, 10, 10, PathManagement},
		{"skill strongest", 10, 90, 10, 10, PathTechnical},
		{"education strongest", 10, 10, 10, 90, PathResearch},
		{"performance strongest", 10, 10, 90, 10, PathOperations},
		{"all equal prefers experience", 50, 50, 50, 50, PathManagement},
		{"skill and education tie prefers skill", 10, 90, 10, 90, PathTechnical},
		{"education and performance tie prefers education", 10, 10, 90, 90, PathResearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := softeval.NewEvaluator()
			eng := New(eval)

			got := reveal(t, eval, eng.RecommendCareerPath(encryptAttrs(eval, tt.exp, tt.skill, tt.perf, tt.edu)))
			if got != tt.want {
				t.Errorf("Expected path %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEngine_DevelopmentAreas(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)
	ladder := policy.DefaultLadder(eval)

	// Toward Mid-Level from {3, 85, 2, 2}: experience gap 1, skill
	// already exceeded, performance gap 2, education met exactly.
	midLevel, _ := ladder.Level(2)
	gaps := eng.DevelopmentAreas(encryptAttrs(eval, 3, 85, 2, 2), midLevel.Requirements)

	checks := []struct {
		name string
		h    fhe.Handle
		want uint64
	}{
		{"experience", gaps.Experience, 1},
		{"skill", gaps.SkillLevel, 0},
		{"performance", gaps.Performance, 2},
		{"education", gaps.Education, 0},
	}
	for _, c := range checks {
		if got := reveal(t, eval, c.h); got != c.want {
			t.Errorf("%s gap: expected %d, got %d", c.name, c.want, got)
		}
	}
}

func TestEngine_GrowthPotential(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)

	attrs := encryptAttrs(eval, 5, 90, 4, 2)
	got := reveal(t, eval, eng.GrowthPotential(attrs, eval.Encrypt(100)))
	if got != 95 {
		t.Errorf("Expected 95, got %d", got)
	}

	// Blend above 100 caps.
	hot := encryptAttrs(eval, 5, 150, 4, 2)
	got = reveal(t, eval, eng.GrowthPotential(hot, eval.Encrypt(100)))
	if got != 100 {
		t.Errorf("Expected cap at 100, got %d", got)
	}
}

func TestEngine_LateralMoveViability(t *testing.T) {
	tests := []struct {
		name       string
		skill, exp uint64
		want       uint64
	}{
		{"both thresholds met", 50, 3, 1},
		{"skill below threshold", 49, 3, 0},
		{"experience below threshold", 50, 2, 0},
		{"well above both", 90, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := softeval.NewEvaluator()
			eng := New(eval)

			got := reveal(t, eval, eng.LateralMoveViability(encryptAttrs(eval, tt.exp, tt.skill, 1, 1)))
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEngine_CareerSatisfaction(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)

	// (5*20 + 97) / 2 = 98
	attrs := encryptAttrs(eval, 5, 90, 5, 2)
	got := reveal(t, eval, eng.CareerSatisfaction(attrs, eval.Encrypt(97)))
	if got != 98 {
		t.Errorf("Expected 98, got %d", got)
	}

	// (10*20 + 100) / 2 = 150, capped at 100.
	driven := encryptAttrs(eval, 5, 90, 10, 2)
	got = reveal(t, eval, eng.CareerSatisfaction(driven, eval.Encrypt(100)))
	if got != 100 {
		t.Errorf("Expected cap at 100, got %d", got)
	}
}

func TestEngine_RetirementEligibility(t *testing.T) {
	eval := softeval.NewEvaluator()
	eng := New(eval)

	got := reveal(t, eval, eng.RetirementEligibility(encryptAttrs(eval, 8, 1, 1, 1)))
	if got != 22 {
		t.Errorf("Expected 22 years remaining, got %d", got)
	}

	got = reveal(t, eval, eng.RetirementEligibility(encryptAttrs(eval, 35, 1, 1, 1)))
	if got != 0 {
		t.Errorf("Expected 0 for eligible subject, got %d", got)
	}
}

func TestEngine_RetentionRisk(t *testing.T) {
	tests := []struct {
		name string
		prob uint64
		time uint64
		want uint64
	}{
		{"certain and immediate", 100, 0, 0},
		{"hopeless and saturated", 0, fhe.MaxValue, 75},
		{"likely but stalled", 97, fhe.MaxValue, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := softeval.NewEvaluator()
			eng := New(eval)

			got := reveal(t, eval, eng.RetentionRisk(eval.Encrypt(tt.prob), eval.Encrypt(tt.time)))
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
