package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"covalent-hq/ladder/pkg/career"
	"covalent-hq/ladder/pkg/career/store"
	"covalent-hq/ladder/pkg/disclosure"
	"covalent-hq/ladder/pkg/fhe"
	"covalent-hq/ladder/pkg/fhe/softeval"
	"covalent-hq/ladder/pkg/policy"
)

var demoFlags struct {
	experience  uint64
	skillLevel  uint64
	performance uint64
	education   uint64
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk one subject through the full lifecycle locally",
	Long: `Run one subject end to end against the built-in three-level ladder:
encrypt the attribute vector, run the oblivious simulation, request
disclosure from the local oracle, process the callback, and print the
revealed result.

Everything runs in-process; nothing is persisted.

Examples:
  # Default attributes (8 years, skill 90, performance 5, education 3)
  ladder demo

  # Custom attributes
  ladder demo --experience 2 --skill 70 --performance 3 --education 1`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Uint64Var(&demoFlags.experience, "experience", 8, "years of experience")
	demoCmd.Flags().Uint64Var(&demoFlags.skillLevel, "skill", 90, "skill level score")
	demoCmd.Flags().Uint64Var(&demoFlags.performance, "performance", 5, "performance rating")
	demoCmd.Flags().Uint64Var(&demoFlags.education, "education", 3, "education level")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	eval := softeval.NewEvaluator()
	oracle := softeval.NewOracle(eval)
	registry := policy.NewRegistry(policy.DefaultLadder(eval), nil, logger)

	svc := career.NewService(eval, registry, store.NewMemoryStore(), nil, logger)
	coordinator := disclosure.NewCoordinator(svc, oracle, nil, nil, logger)

	const owner = "demo-user"

	attrs := fhe.AttributeVector{
		Experience:  eval.Encrypt(demoFlags.experience),
		SkillLevel:  eval.Encrypt(demoFlags.skillLevel),
		Performance: eval.Encrypt(demoFlags.performance),
		Education:   eval.Encrypt(demoFlags.education),
	}

	subjectID, err := svc.CreateProfile(ctx, owner, attrs)
	if err != nil {
		return err
	}
	fmt.Printf("profile created: %s\n", subjectID)

	if err := svc.RunSimulation(ctx, owner, subjectID); err != nil {
		return err
	}
	fmt.Println("simulation complete (result still encrypted)")

	requestID, err := coordinator.Request(ctx, owner, subjectID)
	if err != nil {
		return err
	}
	fmt.Printf("disclosure requested: %s\n", requestID)

	// The local oracle resolves synchronously; a production oracle calls
	// back after its threshold decryption ceremony.
	clear, proof, err := oracle.Resolve(requestID)
	if err != nil {
		return err
	}
	if err := coordinator.HandleCallback(ctx, requestID, clear, proof); err != nil {
		return err
	}

	result, err := svc.Disclosed(ctx, owner, subjectID)
	if err != nil {
		return err
	}

	ladder := registry.Snapshot()
	nextTitle := "(top of ladder)"
	if level, ok := ladder.Level(int(result.NextLevel)); ok {
		nextTitle = level.Title
	}

	fmt.Println()
	fmt.Printf("promotion probability: %d%%\n", result.Probability)
	if result.Time == fhe.MaxValue {
		fmt.Println("time to promotion:     not reachable at current trajectory")
	} else {
		fmt.Printf("time to promotion:     %d years\n", result.Time)
	}
	fmt.Printf("next level:            %d %s\n", result.NextLevel, nextTitle)

	return nil
}
