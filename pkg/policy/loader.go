package policy

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"covalent-hq/ladder/pkg/fhe"
)

// maxLadderFileSize bounds ladder files; anything larger is rejected before
// parsing.
const maxLadderFileSize = 1 << 20

// ladderFile is the on-disk YAML shape. Thresholds are plaintext integers
// in the file and enter the encrypted domain here, at load time.
type ladderFile struct {
	Levels []levelEntry `yaml:"levels"`
}

type levelEntry struct {
	Rank         int    `yaml:"rank"`
	Title        string `yaml:"title"`
	Requirements struct {
		Experience  uint64 `yaml:"experience"`
		SkillLevel  uint64 `yaml:"skill_level"`
		Performance uint64 `yaml:"performance"`
		Education   uint64 `yaml:"education"`
	} `yaml:"requirements"`
}

// Loader parses ladder files and encrypts their thresholds through an
// evaluator.
type Loader struct {
	eval fhe.Evaluator
}

// NewLoader creates a loader bound to the given evaluator.
func NewLoader(eval fhe.Evaluator) *Loader {
	return &Loader{eval: eval}
}

// Evaluator returns the evaluator this loader encrypts thresholds with.
func (l *Loader) Evaluator() fhe.Evaluator {
	return l.eval
}

// LoadFile reads, parses, and validates a ladder file.
func (l *Loader) LoadFile(path string) (*Ladder, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to access file", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Path: path, Message: "not a regular file"}
	}
	if info.Size() > maxLadderFileSize {
		return nil, &LoadError{
			Path:    path,
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), maxLadderFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	ladder, err := l.Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid ladder file", Cause: err}
	}
	return ladder, nil
}

// Parse parses ladder YAML and encrypts the thresholds.
func (l *Loader) Parse(data []byte) (*Ladder, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("ladder file is not valid UTF-8")
	}

	var file ladderFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	levels := make([]Level, 0, len(file.Levels))
	for _, entry := range file.Levels {
		levels = append(levels, Level{
			Rank:  entry.Rank,
			Title: entry.Title,
			Requirements: Requirements{
				Experience:  l.eval.Encrypt(entry.Requirements.Experience),
				SkillLevel:  l.eval.Encrypt(entry.Requirements.SkillLevel),
				Performance: l.eval.Encrypt(entry.Requirements.Performance),
				Education:   l.eval.Encrypt(entry.Requirements.Education),
			},
		})
	}

	return NewLadder(levels)
}

// DefaultLadder returns the built-in three-level ladder used by the demo
// pipeline and tests: Junior, Mid-Level, Senior.
func DefaultLadder(eval fhe.Evaluator) *Ladder {
	enc := func(exp, skill, perf, edu uint64) Requirements {
		return Requirements{
			Experience:  eval.Encrypt(exp),
			SkillLevel:  eval.Encrypt(skill),
			Performance: eval.Encrypt(perf),
			Education:   eval.Encrypt(edu),
		}
	}

	ladder, err := NewLadder([]Level{
		{Rank: 1, Title: "Junior", Requirements: enc(2, 70, 3, 1)},
		{Rank: 2, Title: "Mid-Level", Requirements: enc(4, 80, 4, 2)},
		{Rank: 3, Title: "Senior", Requirements: enc(7, 90, 5, 3)},
	})
	if err != nil {
		// The built-in ladder is statically well formed.
		panic(err)
	}
	return ladder
}
