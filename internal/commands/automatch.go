package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/evidence"
	"github.com/settled-dev/settled/internal/match"
	"github.com/settled-dev/settled/internal/recon"
)

func newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <transaction-id>",
		Short: "Show ranked evidence suggestions for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}

			orch := recon.NewOrchestrator(e.store(), match.DefaultWeights(), e.cfg.Matching.MaxSuggestions)
			suggestions, err := orch.Suggest(args[0], ev.Candidates())
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no suggestions")
				return nil
			}
			for i, s := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s  score=%d  (%s)\n",
					i+1, s.CandidateType, s.CandidateID, s.Score, strings.Join(s.Reasons, ", "))
			}
			return nil
		},
	}
}

func newAutoMatchCommand() *cobra.Command {
	var minConfidence int

	cmd := &cobra.Command{
		Use:   "automatch <statement-id>",
		Short: "Auto-match a statement's transactions against evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}

			threshold := minConfidence
			if !cmd.Flags().Changed("min-confidence") {
				threshold = e.cfg.Matching.MinConfidence
			}

			orch := recon.NewOrchestrator(e.store(), match.DefaultWeights(), e.cfg.Matching.MaxSuggestions)
			summary, err := orch.AutoMatch(cmd.Context(), args[0], threshold, ev.Candidates())
			if err != nil {
				return err
			}
			e.maybeCommit("automatch: " + args[0])

			fmt.Fprintf(cmd.OutOrStdout(), "matched %d, unmatched %d\n", summary.Matched, summary.Unmatched)
			return nil
		},
	}

	cmd.Flags().IntVar(&minConfidence, "min-confidence", recon.DefaultMinConfidence, "minimum score to commit a match")
	return cmd
}
