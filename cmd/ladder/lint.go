package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"covalent-hq/ladder/pkg/fhe/softeval"
	"covalent-hq/ladder/pkg/policy"
)

var lintFlags struct {
	file string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a promotion ladder file",
	Long: `Parse and validate a promotion ladder file without starting the
runtime.

The lint command checks YAML syntax, verifies every level carries a
title and a complete requirements block, and enforces the ladder shape:
ranks contiguous from 1 with no duplicates.

Examples:
  # Validate a ladder file
  ladder lint --file ladder.yaml`,
	RunE: lintLadder,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "ladder.yaml", "ladder file to validate")
}

func lintLadder(cmd *cobra.Command, args []string) error {
	// Thresholds are encrypted at load, so linting needs an evaluator; a
	// throwaway soft evaluator serves, the ciphertexts are discarded.
	loader := policy.NewLoader(softeval.NewEvaluator())

	ladder, err := loader.LoadFile(lintFlags.file)
	if err != nil {
		return fmt.Errorf("✗ %s: %w", lintFlags.file, err)
	}

	fmt.Printf("✓ %s is valid (%d levels)\n", lintFlags.file, ladder.MaxRank())
	for _, level := range ladder.Levels() {
		fmt.Printf("  %d. %s\n", level.Rank, level.Title)
	}
	return nil
}
