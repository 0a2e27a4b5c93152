// Package statement runs the parse pipeline: raw file bytes through the
// tabular reader, layout recognizer, and field normalizer into canonical
// transactions.
package statement

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/id"
	"github.com/settled-dev/settled/internal/layout"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/normalize"
	"github.com/settled-dev/settled/internal/tabular"
)

// ErrNoTransactions means the file was readable but no row survived
// validation.
var ErrNoTransactions = errors.New("no transactions extracted")

// ErrInvalidMapping means a caller-supplied column mapping was missing
// required fields.
var ErrInvalidMapping = errors.New("invalid column mapping")

// ManualFormatName is reported when a caller-supplied mapping bypassed
// layout recognition.
const ManualFormatName = "Manual"

// Options controls a parse run.
type Options struct {
	// Mapping, when non-nil, bypasses layout recognition entirely.
	Mapping *model.ColumnMapping
	// DayFirst selects the day/month convention for ambiguous dates.
	DayFirst bool
}

// Result is the outcome of a successful parse. Transactions carry fresh
// IDs but no statement ID; the store assigns that on save.
type Result struct {
	Transactions []model.Transaction
	FormatName   string
	Headers      []string
	Mapping      model.ColumnMapping
	Covered      model.DateRange
	RowCount     int // data rows seen
	Skipped      int // rows dropped by row-level validation
}

// Parse converts raw statement bytes into canonical transactions. Row
// failures (bad date, bad amount, missing description) skip the row;
// file-level failures return an error with a machine-stable reason.
func Parse(data []byte, filename string, opts Options) (*Result, error) {
	tbl, err := tabular.Read(data, filename)
	if err != nil {
		return nil, err
	}

	var mapping model.ColumnMapping
	formatName := ManualFormatName
	if opts.Mapping != nil {
		mapping = *opts.Mapping
		if !mapping.Complete() {
			return nil, fmt.Errorf("%w: need date, description, and amount or debit/credit columns", ErrInvalidMapping)
		}
	} else {
		mapping, formatName, err = layout.Recognize(tbl.Headers)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		FormatName: formatName,
		Headers:    tbl.Headers,
		Mapping:    mapping,
		RowCount:   len(tbl.Rows),
	}

	for _, row := range tbl.Rows {
		txn, ok := buildTransaction(row, mapping, opts.DayFirst)
		if !ok {
			res.Skipped++
			continue
		}
		res.Covered = res.Covered.Extend(txn.Date)
		res.Transactions = append(res.Transactions, txn)
	}

	if len(res.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	// Date ascending; same-day rows keep file order.
	sort.SliceStable(res.Transactions, func(i, j int) bool {
		return res.Transactions[i].Date.Before(res.Transactions[j].Date)
	})
	return res, nil
}

// buildTransaction normalizes one row. Returns ok=false when the row
// should be silently skipped.
func buildTransaction(row tabular.Row, mapping model.ColumnMapping, dayFirst bool) (model.Transaction, bool) {
	date, err := normalize.Date(row[mapping.Date], dayFirst)
	if err != nil {
		return model.Transaction{}, false
	}

	desc := strings.TrimSpace(row[mapping.Description])
	if desc == "" {
		return model.Transaction{}, false
	}

	amount, polarity, ok := resolveAmount(row, mapping)
	if !ok {
		return model.Transaction{}, false
	}

	return model.Transaction{
		ID:          id.NewTransactionID(),
		Date:        date,
		Description: desc,
		Amount:      amount,
		Polarity:    polarity,
	}, true
}

// resolveAmount derives the stored magnitude and polarity. With a single
// signed column, negative means debit and the sign is discarded. With a
// debit/credit pair, whichever column is non-zero wins; a row with
// neither is skipped.
func resolveAmount(row tabular.Row, mapping model.ColumnMapping) (decimal.Decimal, model.Polarity, bool) {
	if !mapping.UsesSplitColumns() {
		amt, err := normalize.Amount(row[mapping.Amount])
		if err != nil {
			return decimal.Decimal{}, "", false
		}
		if amt.IsNegative() {
			return amt.Abs(), model.PolarityDebit, true
		}
		return amt, model.PolarityCredit, true
	}

	debit := optionalAmount(row[mapping.Debit])
	credit := optionalAmount(row[mapping.Credit])
	switch {
	case !debit.IsZero():
		return debit.Abs(), model.PolarityDebit, true
	case !credit.IsZero():
		return credit.Abs(), model.PolarityCredit, true
	default:
		return decimal.Decimal{}, "", false
	}
}

// optionalAmount treats blank or unparseable split-column cells as zero.
func optionalAmount(cell string) decimal.Decimal {
	amt, err := normalize.Amount(cell)
	if err != nil {
		return decimal.Zero
	}
	return amt
}
