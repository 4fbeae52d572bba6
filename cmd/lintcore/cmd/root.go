// Package cmd implements the cmd/lintcore command tree: a thin cobra
// wrapper around the lintcore package, in the manner of cmd/cue/cmd's
// own command wiring, trimmed to a single verify subcommand (spec.md
// §1 Non-goals: no config discovery, no globbing, no caching).
package cmd

import (
	"github.com/spf13/cobra"
)

// New builds the root "lintcore" command.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "lintcore",
		Short:         "run the linting core against a parsed-source fixture",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVerifyCmd())
	return root
}

// Main runs the command tree against os.Args and returns the process
// exit code.
func Main(args []string) int {
	root := New()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		root.PrintErrln(err)
		return 1
	}
	return 0
}
