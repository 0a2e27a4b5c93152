package match

import (
	"sort"
	"time"

	"github.com/settled-dev/settled/internal/model"
)

// DefaultTopN is how many suggestions Suggest returns when the caller
// does not override it.
const DefaultTopN = 5

// Suggest scores every candidate in the pool against the transaction
// and returns the top-N suggestions, best first. Zero-score candidates
// are dropped; an empty pool yields an empty list.
func Suggest(txn model.Transaction, pool []Candidate, w Weights, topN int) []Suggestion {
	if topN <= 0 {
		topN = DefaultTopN
	}

	type scored struct {
		Suggestion
		dateGap time.Duration
	}

	var ranked []scored
	for _, c := range pool {
		score, reasons := Score(txn, c, w)
		if score == 0 {
			continue
		}
		gap := txn.Date.Sub(c.Date)
		if gap < 0 {
			gap = -gap
		}
		ranked = append(ranked, scored{
			Suggestion: Suggestion{
				CandidateType: c.Type,
				CandidateID:   c.ID,
				Score:         score,
				Reasons:       reasons,
			},
			dateGap: gap,
		})
	}

	// Score descending, then closer date, then candidate ID for a
	// deterministic order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].dateGap != ranked[j].dateGap {
			return ranked[i].dateGap < ranked[j].dateGap
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]Suggestion, len(ranked))
	for i, s := range ranked {
		out[i] = s.Suggestion
	}
	return out
}
