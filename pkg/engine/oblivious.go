package engine

import (
	"covalent-hq/ladder/pkg/fhe"
	"covalent-hq/ladder/pkg/policy"
)

// clampSub returns a - b clamped at zero. The raw homomorphic subtraction
// wraps when b exceeds a; the Select guard makes sure a wrapped difference
// never reaches an output.
func (e *Engine) clampSub(a, b fhe.Handle) fhe.Handle {
	return e.eval.Select(e.eval.Ge(a, b), e.eval.Sub(a, b), e.zero)
}

// clamp100 caps a value at 100 for probability-like outputs.
func (e *Engine) clamp100(v fhe.Handle) fhe.Handle {
	return e.eval.Select(e.eval.Gt(v, e.hundred), e.hundred, v)
}

// max2 returns the larger of two encrypted values.
func (e *Engine) max2(a, b fhe.Handle) fhe.Handle {
	return e.eval.Select(e.eval.Ge(a, b), a, b)
}

// lookupRequirements resolves the requirement vector for an encrypted rank
// as a weighted oblivious sum across every ladder level:
//
//	req = Σ_i select(rank == i, level_i.req, 0)
//
// An index into a plain table would reveal the rank through the access
// pattern; the weighted sum touches every level unconditionally. A rank
// outside the ladder matches nothing and yields the zero vector, which is
// the defined boundary for "no next level exists".
func (e *Engine) lookupRequirements(rank fhe.Handle, ladder *policy.Ladder) policy.Requirements {
	reqs := policy.Requirements{
		Experience:  e.zero,
		SkillLevel:  e.zero,
		Performance: e.zero,
		Education:   e.zero,
	}

	for _, lvl := range ladder.Levels() {
		isRank := e.eval.Eq(rank, e.eval.Encrypt(uint64(lvl.Rank)))
		reqs.Experience = e.eval.Add(reqs.Experience, e.eval.Select(isRank, lvl.Requirements.Experience, e.zero))
		reqs.SkillLevel = e.eval.Add(reqs.SkillLevel, e.eval.Select(isRank, lvl.Requirements.SkillLevel, e.zero))
		reqs.Performance = e.eval.Add(reqs.Performance, e.eval.Select(isRank, lvl.Requirements.Performance, e.zero))
		reqs.Education = e.eval.Add(reqs.Education, e.eval.Select(isRank, lvl.Requirements.Education, e.zero))
	}

	return reqs
}

// meetsAll returns a 0/1-valued handle for "attrs satisfies every
// requirement of the level".
func (e *Engine) meetsAll(attrs fhe.AttributeVector, reqs policy.Requirements) fhe.Handle {
	met := e.eval.Ge(attrs.Experience, reqs.Experience)
	met = e.eval.And(met, e.eval.Ge(attrs.SkillLevel, reqs.SkillLevel))
	met = e.eval.And(met, e.eval.Ge(attrs.Performance, reqs.Performance))
	met = e.eval.And(met, e.eval.Ge(attrs.Education, reqs.Education))
	return met
}
