package recon

import (
	"context"
	"errors"
	"fmt"

	"github.com/settled-dev/settled/internal/match"
)

// DefaultMinConfidence is the auto-match threshold used when the caller
// does not supply one.
const DefaultMinConfidence = 70

// Orchestrator applies matching policy over the store: interactive
// suggestions and batch auto-match. Candidate pools are supplied by the
// caller; the orchestrator never queries evidence storage itself.
type Orchestrator struct {
	store   *Store
	weights match.Weights
	topN    int
}

// NewOrchestrator creates an Orchestrator. topN <= 0 uses the engine
// default.
func NewOrchestrator(store *Store, weights match.Weights, topN int) *Orchestrator {
	return &Orchestrator{store: store, weights: weights, topN: topN}
}

// Suggest returns the ranked suggestions for one transaction without
// committing anything.
func (o *Orchestrator) Suggest(txnID string, pool []match.Candidate) ([]match.Suggestion, error) {
	txn, err := o.store.Transaction(txnID)
	if err != nil {
		return nil, err
	}
	return match.Suggest(txn, pool, o.weights, o.topN), nil
}

// AutoMatchSummary is the aggregate outcome of one auto-match pass.
type AutoMatchSummary struct {
	Matched   int // committed this pass
	Unmatched int // still unresolved after the pass
}

// AutoMatch iterates a statement's unresolved transactions in date
// order and commits the top suggestion of each that clears the
// threshold. minConfidence <= 0 uses the default. Re-running is
// idempotent: resolved transactions are excluded up front, and a commit
// conflict (a concurrent writer got there first) counts as already
// resolved rather than failing the batch. Cancellation is honored
// between transactions, never mid-commit.
func (o *Orchestrator) AutoMatch(ctx context.Context, stmtID string, minConfidence int, pool []match.Candidate) (AutoMatchSummary, error) {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	if _, err := o.store.Statement(stmtID); err != nil {
		return AutoMatchSummary{}, err
	}
	txns, err := o.store.Transactions(stmtID)
	if err != nil {
		return AutoMatchSummary{}, err
	}

	var summary AutoMatchSummary
	for _, txn := range txns {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if txn.Resolved() {
			continue
		}

		suggestions := match.Suggest(txn, pool, o.weights, 1)
		if len(suggestions) == 0 || suggestions[0].Score < minConfidence {
			summary.Unmatched++
			continue
		}

		if err := o.commit(txn.ID, suggestions[0]); err != nil {
			if errors.Is(err, ErrConflict) {
				continue // someone else resolved it; not a failure
			}
			return summary, err
		}
		summary.Matched++
	}
	return summary, nil
}

func (o *Orchestrator) commit(txnID string, s match.Suggestion) error {
	var kind ActionKind
	switch s.CandidateType {
	case match.CandidateReceipt:
		kind = ActionMatchReceipt
	case match.CandidatePurchaseOrder:
		kind = ActionMatchPurchaseOrder
	default:
		return fmt.Errorf("unknown candidate type %q", s.CandidateType)
	}
	_, err := o.store.Apply(txnID, Action{Kind: kind, TargetID: s.CandidateID})
	return err
}
