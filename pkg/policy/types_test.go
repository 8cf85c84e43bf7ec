package policy

import (
	"testing"

	"covalent-hq/ladder/pkg/fhe/softeval"
)

func testLevel(t *testing.T, rank int, title string) Level {
	t.Helper()
	eval := softeval.NewEvaluator()
	return Level{
		Rank:  rank,
		Title: title,
		Requirements: Requirements{
			Experience:  eval.Encrypt(1),
			SkillLevel:  eval.Encrypt(1),
			Performance: eval.Encrypt(1),
			Education:   eval.Encrypt(1),
		},
	}
}

func TestNewLadder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		levels []Level
	}{
		{"no levels", nil},
		{"empty title", []Level{testLevel(t, 1, "")}},
		{"incomplete requirements", []Level{{Rank: 1, Title: "Junior"}}},
		{"duplicate rank", []Level{testLevel(t, 1, "A"), testLevel(t, 1, "B")}},
		{"rank gap", []Level{testLevel(t, 1, "A"), testLevel(t, 3, "C")}},
		{"does not start at 1", []Level{testLevel(t, 2, "B")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLadder(tt.levels); err == nil {
				t.Errorf("NewLadder() succeeded, expected validation error")
			}
		})
	}
}

func TestNewLadder_SortsByRank(t *testing.T) {
	ladder, err := NewLadder([]Level{
		testLevel(t, 3, "Senior"),
		testLevel(t, 1, "Junior"),
		testLevel(t, 2, "Mid-Level"),
	})
	if err != nil {
		t.Fatalf("NewLadder() failed: %v", err)
	}

	levels := ladder.Levels()
	for i, want := range []string{"Junior", "Mid-Level", "Senior"} {
		if levels[i].Title != want {
			t.Errorf("Level %d: expected %q, got %q", i, want, levels[i].Title)
		}
		if levels[i].Rank != i+1 {
			t.Errorf("Level %d: expected rank %d, got %d", i, i+1, levels[i].Rank)
		}
	}

	if ladder.MaxRank() != 3 {
		t.Errorf("Expected max rank 3, got %d", ladder.MaxRank())
	}
}

func TestLadder_Level(t *testing.T) {
	ladder, err := NewLadder([]Level{testLevel(t, 1, "Junior"), testLevel(t, 2, "Senior")})
	if err != nil {
		t.Fatalf("NewLadder() failed: %v", err)
	}

	if lvl, ok := ladder.Level(2); !ok || lvl.Title != "Senior" {
		t.Errorf("Level(2): expected Senior, got %v %v", lvl.Title, ok)
	}
	if _, ok := ladder.Level(0); ok {
		t.Error("Level(0) should not exist")
	}
	if _, ok := ladder.Level(3); ok {
		t.Error("Level(3) should not exist")
	}
}

func TestLadder_LevelsReturnsCopy(t *testing.T) {
	ladder, err := NewLadder([]Level{testLevel(t, 1, "Junior")})
	if err != nil {
		t.Fatalf("NewLadder() failed: %v", err)
	}

	levels := ladder.Levels()
	levels[0].Title = "mutated"

	if got := ladder.Levels()[0].Title; got != "Junior" {
		t.Errorf("Ladder mutated through Levels() copy: %q", got)
	}
}
