package policy

import (
	"fmt"

	"covalent-hq/ladder/pkg/fhe"
)

// Requirements is one level's encrypted threshold vector.
type Requirements struct {
	Experience  fhe.Handle
	SkillLevel  fhe.Handle
	Performance fhe.Handle
	Education   fhe.Handle
}

// IsComplete reports whether all four requirement handles are present.
func (r Requirements) IsComplete() bool {
	return !r.Experience.IsZero() && !r.SkillLevel.IsZero() &&
		!r.Performance.IsZero() && !r.Education.IsZero()
}

// Level is one rung of the career ladder: an integer rank, a disclosed
// title, and an encrypted requirement vector.
type Level struct {
	Rank         int
	Title        string
	Requirements Requirements
}

// Ladder is an immutable ordered sequence of levels, ranks contiguous from
// 1. Build one with NewLadder; the evaluation engine reads it as a snapshot.
type Ladder struct {
	levels []Level
}

// NewLadder validates and freezes a level sequence. Levels may arrive in any
// order; the result is sorted by rank.
func NewLadder(levels []Level) (*Ladder, error) {
	if len(levels) == 0 {
		return nil, &ValidationError{Message: "ladder has no levels"}
	}

	byRank := make(map[int]Level, len(levels))
	for _, lvl := range levels {
		if lvl.Title == "" {
			return nil, &ValidationError{Rank: lvl.Rank, Message: "level title is empty"}
		}
		if !lvl.Requirements.IsComplete() {
			return nil, &ValidationError{Rank: lvl.Rank, Message: "level requirement vector is incomplete"}
		}
		if _, dup := byRank[lvl.Rank]; dup {
			return nil, &ValidationError{Rank: lvl.Rank, Message: "duplicate rank"}
		}
		byRank[lvl.Rank] = lvl
	}

	ordered := make([]Level, 0, len(levels))
	for rank := 1; rank <= len(levels); rank++ {
		lvl, ok := byRank[rank]
		if !ok {
			return nil, &ValidationError{
				Rank:    rank,
				Message: fmt.Sprintf("ranks must be contiguous from 1, missing rank %d", rank),
			}
		}
		ordered = append(ordered, lvl)
	}

	return &Ladder{levels: ordered}, nil
}

// Levels returns the levels in rank order. The slice is a copy; mutating it
// does not affect the ladder.
func (l *Ladder) Levels() []Level {
	out := make([]Level, len(l.levels))
	copy(out, l.levels)
	return out
}

// Level returns the level with the given rank.
func (l *Ladder) Level(rank int) (Level, bool) {
	if rank < 1 || rank > len(l.levels) {
		return Level{}, false
	}
	return l.levels[rank-1], true
}

// MaxRank returns the highest rank in the ladder.
func (l *Ladder) MaxRank() int {
	return len(l.levels)
}
