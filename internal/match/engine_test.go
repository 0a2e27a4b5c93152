package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_RanksByScore(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "COFFEE HOUSE")
	pool := []Candidate{
		{Type: CandidatePurchaseOrder, ID: "po_far", Amount: dec("45.00"), Date: day(2025, 1, 13)},
		{Type: CandidateReceipt, ID: "rcpt_best", Amount: dec("45.00"), Date: day(2025, 1, 10), Name: "Coffee House"},
		{Type: CandidateReceipt, ID: "rcpt_near", Amount: dec("45.00"), Date: day(2025, 1, 11)},
	}

	got := Suggest(tx, pool, DefaultWeights(), 5)
	require.Len(t, got, 3)
	assert.Equal(t, "rcpt_best", got[0].CandidateID)
	assert.Equal(t, "rcpt_near", got[1].CandidateID)
	assert.Equal(t, "po_far", got[2].CandidateID)
	assert.Equal(t, 100, got[0].Score)
}

func TestSuggest_TieBreakCloserDateThenID(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "x")
	w := DefaultWeights()

	// Same amount signal, different date gaps.
	pool := []Candidate{
		{ID: "b", Amount: dec("45.00"), Date: day(2025, 1, 20)},
		{ID: "a", Amount: dec("45.00"), Date: day(2025, 1, 25)},
	}
	got := Suggest(tx, pool, w, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].CandidateID, "closer date wins the tie")

	// Identical in every scored respect: ID breaks the tie.
	pool = []Candidate{
		{ID: "z", Amount: dec("45.00"), Date: day(2025, 1, 20)},
		{ID: "a", Amount: dec("45.00"), Date: day(2025, 1, 20)},
	}
	got = Suggest(tx, pool, w, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].CandidateID)
}

func TestSuggest_TopN(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "x")
	var pool []Candidate
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"} {
		pool = append(pool, Candidate{ID: id, Amount: dec("45.00"), Date: day(2025, 1, 10)})
	}

	got := Suggest(tx, pool, DefaultWeights(), 5)
	assert.Len(t, got, 5)
}

func TestSuggest_EmptyPool(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "x")
	assert.Empty(t, Suggest(tx, nil, DefaultWeights(), 5))
}

func TestSuggest_DropsZeroScores(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "COFFEE")
	pool := []Candidate{
		{ID: "noise", Amount: dec("999.99"), Date: day(2020, 6, 1), Name: "Unrelated"},
	}
	assert.Empty(t, Suggest(tx, pool, DefaultWeights(), 5))
}

func TestSuggest_Deterministic(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "COFFEE HOUSE")
	pool := []Candidate{
		{Type: CandidateReceipt, ID: "rcpt_1", Amount: dec("45.00"), Date: day(2025, 1, 10), Name: "Coffee House"},
		{Type: CandidateReceipt, ID: "rcpt_2", Amount: dec("44.50"), Date: day(2025, 1, 9), Name: "Coffee"},
		{Type: CandidatePurchaseOrder, ID: "po_1", Amount: dec("45.00"), Date: day(2025, 1, 12)},
	}
	w := DefaultWeights()

	first := Suggest(tx, pool, w, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Suggest(tx, pool, w, 5))
	}
}

func TestSuggest_DefaultTopN(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "x")
	var pool []Candidate
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6"} {
		pool = append(pool, Candidate{ID: id, Amount: dec("45.00"), Date: day(2025, 1, 10)})
	}

	got := Suggest(tx, pool, DefaultWeights(), 0)
	assert.Len(t, got, DefaultTopN)
}
