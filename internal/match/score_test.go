package match

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/settled-dev/settled/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(amount string, date time.Time, desc string) model.Transaction {
	return model.Transaction{
		ID:          "txn_test",
		Date:        date,
		Description: desc,
		Amount:      dec(amount),
		Polarity:    model.PolarityDebit,
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "CARD PAYMENT COFFEE HOUSE LONDON")
	c := Candidate{Type: CandidateReceipt, ID: "rcpt_1", Amount: dec("45.00"), Date: day(2025, 1, 10), Name: "Coffee House"}

	score, reasons := Score(tx, c, DefaultWeights())
	assert.Equal(t, 100, score)
	assert.Equal(t, []string{"amount matches exactly", "same date", "merchant name overlap"}, reasons)
}

func TestScore_AmountExactBoundary(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "x")
	w := DefaultWeights()

	// One minor unit off is still exact (inclusive).
	score, reasons := Score(tx, Candidate{ID: "c", Amount: dec("45.01"), Date: day(2024, 1, 1)}, w)
	assert.Equal(t, w.AmountExact, score)
	assert.Contains(t, reasons, "amount matches exactly")

	// Two minor units off is not.
	score, reasons = Score(tx, Candidate{ID: "c", Amount: dec("45.02"), Date: day(2024, 1, 1)}, w)
	assert.NotContains(t, reasons, "amount matches exactly")
	assert.Less(t, score, w.AmountExact)
}

func TestScore_AmountCloseBoundary(t *testing.T) {
	tx := txn("100.00", day(2025, 1, 10), "x")
	w := DefaultWeights()

	// Exactly 2% relative difference is included.
	score, reasons := Score(tx, Candidate{ID: "c", Amount: dec("102.00"), Date: day(2024, 1, 1)}, w)
	assert.Equal(t, w.AmountClose, score)
	assert.Equal(t, []string{"amount within 2%"}, reasons)

	// Just over 2% is excluded.
	score, _ = Score(tx, Candidate{ID: "c", Amount: dec("102.01"), Date: day(2024, 1, 1)}, w)
	assert.Equal(t, 0, score)
}

func TestScore_DateDecay(t *testing.T) {
	w := DefaultWeights()
	tx := txn("1.00", day(2025, 1, 10), "x")

	cases := []struct {
		date time.Time
		want int
	}{
		{day(2025, 1, 10), w.DateSame},
		{day(2025, 1, 11), 18},
		{day(2025, 1, 8), 12},
		{day(2025, 1, 13), 6},
		{day(2025, 1, 14), 0},
	}
	for _, tc := range cases {
		c := Candidate{ID: "c", Amount: dec("999.00"), Date: tc.date}
		score, _ := Score(tx, c, w)
		assert.Equal(t, tc.want, score, "candidate date %s", tc.date.Format("2006-01-02"))
	}
}

func TestScore_NameOverlapScaling(t *testing.T) {
	w := DefaultWeights()
	tx := txn("1.00", day(2025, 1, 10), "POS PURCHASE ACME 0042")

	// One of three tokens found.
	c := Candidate{ID: "c", Amount: dec("999.00"), Date: day(2024, 1, 1), Name: "ACME Widgets Ltd"}
	score, reasons := Score(tx, c, w)
	assert.Equal(t, w.NameOverlapMax*1/3, score)
	assert.Equal(t, []string{"merchant name overlap"}, reasons)

	// Whole name contained in the description.
	tx2 := txn("1.00", day(2025, 1, 10), "acme widgets ltd invoice 9")
	score, _ = Score(tx2, c, w)
	assert.Equal(t, w.NameOverlapMax, score)
}

func TestScore_NoSignals(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "COFFEE")
	c := Candidate{ID: "c", Amount: dec("999.00"), Date: day(2020, 1, 1), Name: "Unrelated Vendor"}

	score, reasons := Score(tx, c, DefaultWeights())
	assert.Equal(t, 0, score)
	assert.Empty(t, reasons)
}

func TestScore_Deterministic(t *testing.T) {
	tx := txn("45.00", day(2025, 1, 10), "CARD PAYMENT COFFEE HOUSE")
	c := Candidate{Type: CandidateReceipt, ID: "rcpt_1", Amount: dec("45.30"), Date: day(2025, 1, 12), Name: "Coffee House"}
	w := DefaultWeights()

	firstScore, firstReasons := Score(tx, c, w)
	for i := 0; i < 10; i++ {
		score, reasons := Score(tx, c, w)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstReasons, reasons)
	}
}
