package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/statement"
)

func newTemplateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a statement CSV template with the canonical headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return statement.WriteTemplate(cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating template: %w", err)
			}
			werr := statement.WriteTemplate(f)
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			return werr
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
