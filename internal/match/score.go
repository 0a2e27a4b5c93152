// Package match scores spend-evidence candidates against a transaction
// and returns ranked, explainable suggestions. It never reads or writes
// storage.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/model"
)

// CandidateType identifies the kind of evidence a candidate is.
type CandidateType string

const (
	CandidateReceipt       CandidateType = "receipt"
	CandidatePurchaseOrder CandidateType = "purchase_order"
)

// Candidate is one piece of evidence under consideration, with only the
// attributes the scorer compares. The caller supplies the pool.
type Candidate struct {
	Type   CandidateType
	ID     string
	Amount decimal.Decimal
	Date   time.Time
	Name   string // merchant or vendor name
}

// Suggestion is one ranked match proposal. Ephemeral; recomputed per
// request.
type Suggestion struct {
	CandidateType CandidateType
	CandidateID   string
	Score         int // 0-100
	Reasons       []string
}

// Weights are the tunable constants of the scoring heuristic.
type Weights struct {
	// AmountExact is awarded when amounts differ by at most one minor
	// unit (inclusive).
	AmountExact int
	// AmountClose is awarded when the difference relative to the
	// transaction amount is within AmountTolerance (inclusive).
	AmountClose     int
	AmountTolerance decimal.Decimal
	// DateSame is awarded for the same calendar day; within
	// DateWindowDays the award decays by DateStep per day of distance.
	DateSame       int
	DateStep       int
	DateWindowDays int
	// NameOverlapMax is the ceiling for the merchant-name overlap
	// award, scaled by the fraction of candidate name tokens found in
	// the description.
	NameOverlapMax int
}

// DefaultWeights returns the stock scoring constants. A perfect
// candidate (exact amount, same day, full name overlap) scores 100.
func DefaultWeights() Weights {
	return Weights{
		AmountExact:     45,
		AmountClose:     25,
		AmountTolerance: decimal.New(2, -2), // 2%
		DateSame:        30,
		DateStep:        6,
		DateWindowDays:  3,
		NameOverlapMax:  25,
	}
}

// minorUnit is one cent; amount differences at or under it count as
// exact.
var minorUnit = decimal.New(1, -2)

// Score rates a single candidate against a transaction, returning the
// capped 0-100 score and one reason per contributing rule. Pure: equal
// inputs always produce equal output.
func Score(txn model.Transaction, c Candidate, w Weights) (int, []string) {
	score := 0
	var reasons []string

	diff := txn.Amount.Sub(c.Amount).Abs()
	switch {
	case diff.LessThanOrEqual(minorUnit):
		score += w.AmountExact
		reasons = append(reasons, "amount matches exactly")
	case txn.Amount.IsPositive() && diff.Div(txn.Amount).LessThanOrEqual(w.AmountTolerance):
		score += w.AmountClose
		reasons = append(reasons, fmt.Sprintf("amount within %s%%", w.AmountTolerance.Mul(decimal.New(100, 0))))
	}

	days := dayDistance(txn.Date, c.Date)
	switch {
	case days == 0:
		score += w.DateSame
		reasons = append(reasons, "same date")
	case days <= w.DateWindowDays:
		pts := (w.DateWindowDays + 1 - days) * w.DateStep
		score += pts
		reasons = append(reasons, fmt.Sprintf("date within %d day(s)", days))
	}

	if pts := nameOverlap(txn.Description, c.Name, w.NameOverlapMax); pts > 0 {
		score += pts
		reasons = append(reasons, "merchant name overlap")
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// dayDistance is the absolute whole-day gap between two calendar dates.
func dayDistance(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// nameOverlap awards up to max points, scaled by the fraction of the
// candidate's name tokens found in the description. Full substring
// containment of the whole name scores the full award.
func nameOverlap(description, name string, max int) int {
	desc := strings.ToLower(description)
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || desc == "" {
		return 0
	}
	if strings.Contains(desc, n) {
		return max
	}

	tokens := strings.Fields(n)
	matched := 0
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		if strings.Contains(desc, tok) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return max * matched / len(tokens)
}
