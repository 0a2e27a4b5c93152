package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/model"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			stmts, err := e.store().Statements()
			if err != nil {
				return err
			}
			if len(stmts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no statements")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tACCOUNT\tSTATUS\tFORMAT\tCOVERED")
			for _, s := range stmts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.OriginalFilename, s.AccountLabel, s.Status, s.FormatName, coveredString(s.Covered))
			}
			return w.Flush()
		},
	}
}

func newTransactionsCommand() *cobra.Command {
	var unresolvedOnly bool

	cmd := &cobra.Command{
		Use:   "transactions <statement-id>",
		Short: "List a statement's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			store := e.store()
			if _, err := store.Statement(args[0]); err != nil {
				return err
			}
			txns, err := store.Transactions(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tSTATUS")
			for _, t := range txns {
				if unresolvedOnly && t.Resolved() {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Description,
					t.Amount.StringFixed(2), t.Polarity, resolutionString(t))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&unresolvedOnly, "unresolved", false, "only show transactions without evidence")
	return cmd
}

func coveredString(r model.DateRange) string {
	if r.IsZero() {
		return "-"
	}
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}

func resolutionString(t model.Transaction) string {
	switch {
	case t.MatchedReceiptID != "":
		return "receipt:" + t.MatchedReceiptID
	case t.MatchedPurchaseOrderID != "":
		return "po:" + t.MatchedPurchaseOrderID
	case t.NoEvidenceRequired:
		return "no-evidence"
	default:
		return "unmatched"
	}
}
