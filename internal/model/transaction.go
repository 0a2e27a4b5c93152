package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Polarity indicates the direction of money movement for a transaction.
type Polarity string

const (
	// PolarityDebit is money leaving the account.
	PolarityDebit Polarity = "debit"
	// PolarityCredit is money entering the account.
	PolarityCredit Polarity = "credit"
)

// Transaction is one canonical line item derived from a statement row.
// Amount is always non-negative; direction lives in Polarity.
type Transaction struct {
	ID          string
	StatementID string
	Date        time.Time // calendar date, midnight UTC
	Description string
	Amount      decimal.Decimal
	Polarity    Polarity

	// Reconciliation state. At most one of MatchedReceiptID,
	// MatchedPurchaseOrderID, or NoEvidenceRequired may be set.
	MatchedReceiptID       string
	MatchedPurchaseOrderID string
	NoEvidenceRequired     bool
}

// Resolved reports whether the transaction no longer needs evidence:
// it is matched to a receipt or purchase order, or flagged as needing none.
func (t Transaction) Resolved() bool {
	return t.MatchedReceiptID != "" || t.MatchedPurchaseOrderID != "" || t.NoEvidenceRequired
}

// SignedAmount returns the amount with debit rows negated, matching the
// sign convention of a bank export.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Polarity == PolarityDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
