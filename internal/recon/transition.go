// Package recon owns reconciliation state: the statement/transaction
// store, the match state-transition rules, and the orchestrator that
// applies matching policy.
package recon

import (
	"errors"
	"fmt"

	"github.com/settled-dev/settled/internal/model"
)

// ErrConflict means an action asserted a link that conflicts with the
// transaction's existing resolution.
var ErrConflict = errors.New("transaction already resolved")

// ActionKind enumerates the match state transitions.
type ActionKind string

const (
	ActionMatchReceipt       ActionKind = "match-receipt"
	ActionMatchPurchaseOrder ActionKind = "match-po"
	ActionUnmatch            ActionKind = "unmatch"
	ActionNoEvidence         ActionKind = "no-receipt"
)

// Action is one requested state transition. TargetID is required for
// the two match kinds and ignored otherwise.
type Action struct {
	Kind     ActionKind
	TargetID string
}

// Transition applies an action to a transaction's match state and
// returns the updated transaction. It is the single place the
// mutual-exclusivity invariant is enforced: at most one of
// matched-receipt, matched-purchase-order, or no-evidence-required may
// be set. Re-asserting an identical link is a no-op; asserting a
// conflicting one returns ErrConflict. Pure — callers persist the
// result.
func Transition(txn model.Transaction, a Action) (model.Transaction, error) {
	switch a.Kind {
	case ActionMatchReceipt:
		if a.TargetID == "" {
			return txn, fmt.Errorf("match-receipt requires a target ID")
		}
		if txn.MatchedReceiptID == a.TargetID {
			return txn, nil
		}
		if txn.Resolved() {
			return txn, fmt.Errorf("%w: %s", ErrConflict, txn.ID)
		}
		txn.MatchedReceiptID = a.TargetID
		return txn, nil

	case ActionMatchPurchaseOrder:
		if a.TargetID == "" {
			return txn, fmt.Errorf("match-po requires a target ID")
		}
		if txn.MatchedPurchaseOrderID == a.TargetID {
			return txn, nil
		}
		if txn.Resolved() {
			return txn, fmt.Errorf("%w: %s", ErrConflict, txn.ID)
		}
		txn.MatchedPurchaseOrderID = a.TargetID
		return txn, nil

	case ActionUnmatch:
		txn.MatchedReceiptID = ""
		txn.MatchedPurchaseOrderID = ""
		txn.NoEvidenceRequired = false
		return txn, nil

	case ActionNoEvidence:
		txn.MatchedReceiptID = ""
		txn.MatchedPurchaseOrderID = ""
		txn.NoEvidenceRequired = true
		return txn, nil

	default:
		return txn, fmt.Errorf("unknown action %q", a.Kind)
	}
}
