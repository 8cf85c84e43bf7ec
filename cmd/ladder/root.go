package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Confidential career-promotion evaluation runtime",
	Long: `Ladder evaluates career promotion readiness over encrypted employee
attributes. Attribute values are never visible to the runtime: the
simulation runs obliviously over ciphertext handles, and results reach
plaintext only through an audited disclosure protocol backed by a
threshold decryption oracle.

The promotion ladder itself is plaintext policy, loadable from a YAML
file or a Git repository, and hot-reloadable at runtime.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
