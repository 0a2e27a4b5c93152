package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/evidence"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/normalize"
)

func newEvidenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Manage recorded spend evidence",
	}
	cmd.AddCommand(newAddReceiptCommand())
	cmd.AddCommand(newAddPurchaseOrderCommand())
	cmd.AddCommand(newEvidenceListCommand())
	return cmd
}

func newAddReceiptCommand() *cobra.Command {
	var merchant, amount, date string
	var pending bool

	cmd := &cobra.Command{
		Use:   "add-receipt",
		Short: "Record a receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			amt, err := normalize.Amount(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			day, err := normalize.Date(date, e.cfg.Locale.DayFirst())
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}
			status := model.ReceiptStatusCompleted
			if pending {
				status = model.ReceiptStatusPending
			}
			r := ev.AddReceipt(model.Receipt{
				Merchant: merchant,
				Amount:   amt,
				Date:     day,
				Status:   status,
			})
			if err := ev.Save(e.dir); err != nil {
				return err
			}
			e.maybeCommit("evidence: add receipt " + r.ID)

			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "receipt amount (required)")
	cmd.Flags().StringVar(&date, "date", "", "receipt date (required)")
	cmd.Flags().BoolVar(&pending, "pending", false, "record as pending (excluded from matching)")
	_ = cmd.MarkFlagRequired("merchant")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newAddPurchaseOrderCommand() *cobra.Command {
	var vendor, amount, date string
	var closed bool

	cmd := &cobra.Command{
		Use:   "add-po",
		Short: "Record a purchase order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			amt, err := normalize.Amount(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			day, err := normalize.Date(date, e.cfg.Locale.DayFirst())
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}
			status := model.PurchaseOrderStatusOpen
			if closed {
				status = model.PurchaseOrderStatusClosed
			}
			o := ev.AddPurchaseOrder(model.PurchaseOrder{
				Vendor: vendor,
				Amount: amt,
				Date:   day,
				Status: status,
			})
			if err := ev.Save(e.dir); err != nil {
				return err
			}
			e.maybeCommit("evidence: add purchase order " + o.ID)

			fmt.Fprintln(cmd.OutOrStdout(), o.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor name (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "order amount (required)")
	cmd.Flags().StringVar(&date, "date", "", "order date (required)")
	cmd.Flags().BoolVar(&closed, "closed", false, "record as closed (excluded from matching)")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newEvidenceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded evidence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ev, err := evidence.Load(e.dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tDATE\tSTATUS")
			for _, r := range ev.Receipts() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Merchant, r.Amount.StringFixed(2), r.Date.Format("2006-01-02"), r.Status)
			}
			for _, o := range ev.PurchaseOrders() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.Vendor, o.Amount.StringFixed(2), o.Date.Format("2006-01-02"), o.Status)
			}
			return w.Flush()
		},
	}
}
