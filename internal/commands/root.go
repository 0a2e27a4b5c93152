// Package commands wires the settled CLI: statement import, review,
// evidence matching, and data directory management.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "settled",
		Short:   "Local-first statement reconciliation",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "d", ".", "data directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newSuggestCommand())
	rootCmd.AddCommand(newAutoMatchCommand())
	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newUnmatchCommand())
	rootCmd.AddCommand(newNoEvidenceCommand())
	rootCmd.AddCommand(newEvidenceCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newRemoveCommand())

	return rootCmd
}
