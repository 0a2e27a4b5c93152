package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/evidence"
	"github.com/settled-dev/settled/internal/recon"
)

func newMatchCommand() *cobra.Command {
	var receiptID string
	var poID string

	cmd := &cobra.Command{
		Use:   "match <transaction-id>",
		Short: "Manually link a transaction to a receipt or purchase order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (receiptID == "") == (poID == "") {
				return fmt.Errorf("exactly one of --receipt or --po is required")
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}

			action := recon.Action{Kind: recon.ActionMatchReceipt, TargetID: receiptID}
			if poID != "" {
				if _, ok := ev.PurchaseOrder(poID); !ok {
					return fmt.Errorf("purchase order %s not found", poID)
				}
				action = recon.Action{Kind: recon.ActionMatchPurchaseOrder, TargetID: poID}
			} else if _, ok := ev.Receipt(receiptID); !ok {
				return fmt.Errorf("receipt %s not found", receiptID)
			}

			txn, err := e.store().Apply(args[0], action)
			if err != nil {
				return err
			}
			e.maybeCommit("match: " + txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "%s matched to %s\n", txn.ID, action.TargetID)
			return nil
		},
	}

	cmd.Flags().StringVar(&receiptID, "receipt", "", "receipt ID to link")
	cmd.Flags().StringVar(&poID, "po", "", "purchase order ID to link")
	return cmd
}

func newUnmatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unmatch <transaction-id>",
		Short: "Clear a transaction's evidence link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			txn, err := e.store().Apply(args[0], recon.Action{Kind: recon.ActionUnmatch})
			if err != nil {
				return err
			}
			e.maybeCommit("unmatch: " + txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "%s unmatched\n", txn.ID)
			return nil
		},
	}
}

func newNoEvidenceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "no-evidence <transaction-id>",
		Short: "Flag a transaction as needing no evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			txn, err := e.store().Apply(args[0], recon.Action{Kind: recon.ActionNoEvidence})
			if err != nil {
				return err
			}
			e.maybeCommit("no-evidence: " + txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "%s flagged as no evidence required\n", txn.ID)
			return nil
		},
	}
}
