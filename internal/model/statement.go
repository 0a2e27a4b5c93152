package model

import "time"

// StatementStatus is the lifecycle state of an imported statement.
type StatementStatus string

const (
	StatusPending    StatementStatus = "pending"
	StatusProcessing StatementStatus = "processing"
	StatusCompleted  StatementStatus = "completed"
	StatusFailed     StatementStatus = "failed"
)

// DateRange is the span of transaction dates covered by a statement.
// Zero Start/End means the range is unknown (no transactions survived).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range was never populated.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Extend widens the range to include d.
func (r DateRange) Extend(d time.Time) DateRange {
	if r.Start.IsZero() || d.Before(r.Start) {
		r.Start = d
	}
	if r.End.IsZero() || d.After(r.End) {
		r.End = d
	}
	return r
}

// Statement is one uploaded bank/card export file and its derived
// transactions. Transactions are stored separately and cascade-deleted
// with the statement.
type Statement struct {
	ID               string
	OriginalFilename string
	AccountLabel     string
	UploadedAt       time.Time
	Covered          DateRange
	Status           StatementStatus
	FormatName       string
	Mapping          ColumnMapping
}
