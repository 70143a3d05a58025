package commands

import (
	"github.com/spf13/cobra"

	stackforge "github.com/stackforge/stackforge"
	"github.com/stackforge/stackforge/internal/output"
)

// RootCmd creates and returns the root command for the stackforge CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "stackforge",
		Short: "Scaffold production-ready Node.js backends",
		Long: `Stackforge scaffolds complete Node.js backend projects with
transactional guarantees: a failed run never leaves a half-built
project behind.

• Fixed, sensible directory skeleton
• Express wiring, datastore config, and optional features
• Dependency installation with rollback on failure
• Optional git initialization

Example:
  stackforge new myapp`,
		Version: stackforge.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
