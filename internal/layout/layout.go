// Package layout recognizes which columns of a statement export carry
// date, description, and amount (or debit/credit) semantics.
package layout

import (
	"errors"
	"strings"

	"github.com/settled-dev/settled/internal/model"
)

// ErrUnrecognizedLayout means no known layout could resolve the headers.
var ErrUnrecognizedLayout = errors.New("unrecognized statement layout")

// Layout describes one known bank export format as alias lists per
// semantic field. A header matches an alias by normalized substring
// containment.
type Layout struct {
	Name        string
	Date        []string
	Description []string
	Amount      []string
	Debit       []string
	Credit      []string
}

// GenericLayoutName is the name reported when only the broad fallback
// layout matched.
const GenericLayoutName = "Generic"

// knownLayouts is scanned in order; the generic fallback is always last
// and the first layout that resolves wins.
var knownLayouts = []Layout{
	{
		Name:        "Chase",
		Date:        []string{"posting date"},
		Description: []string{"description"},
		Amount:      []string{"amount"},
	},
	{
		Name:        "Bank of America",
		Date:        []string{"posted date"},
		Description: []string{"payee", "description"},
		Amount:      []string{"amount"},
	},
	{
		Name:        "Barclays",
		Date:        []string{"date"},
		Description: []string{"memo"},
		Amount:      []string{"amount"},
	},
	{
		Name:        "HSBC",
		Date:        []string{"date"},
		Description: []string{"description", "details"},
		Debit:       []string{"paid out"},
		Credit:      []string{"paid in"},
	},
	{
		Name:        "Metro Bank",
		Date:        []string{"date"},
		Description: []string{"transaction detail"},
		Debit:       []string{"money out"},
		Credit:      []string{"money in"},
	},
	{
		Name:        GenericLayoutName,
		Date:        []string{"transaction date", "posting date", "posted", "date"},
		Description: []string{"description", "details", "memo", "narrative", "transaction detail", "payee"},
		Amount:      []string{"amount", "value"},
		Debit:       []string{"debit", "money out", "paid out", "withdrawal"},
		Credit:      []string{"credit", "money in", "paid in", "deposit"},
	},
}

// Recognize scans the known layouts in order and returns the first
// column mapping that resolves date + description + (amount or
// debit/credit), along with the matching layout's name.
func Recognize(headers []string) (model.ColumnMapping, string, error) {
	for _, l := range knownLayouts {
		if m, ok := l.resolve(headers); ok {
			return m, l.Name, nil
		}
	}
	return model.ColumnMapping{}, "", ErrUnrecognizedLayout
}

func (l Layout) resolve(headers []string) (model.ColumnMapping, bool) {
	claimed := make(map[string]bool)

	date := findHeader(headers, l.Date, claimed)
	desc := findHeader(headers, l.Description, claimed)
	if date == "" || desc == "" {
		return model.ColumnMapping{}, false
	}

	// A debit/credit pair takes precedence so that headers like
	// "Debit Amount"/"Credit Amount" are not mistaken for a single
	// signed amount column.
	debit := findHeader(headers, l.Debit, claimed)
	credit := findHeader(headers, l.Credit, claimed)
	if debit != "" && credit != "" {
		return model.ColumnMapping{Date: date, Description: desc, Debit: debit, Credit: credit}, true
	}

	amount := findHeader(headers, l.Amount, claimed)
	if amount != "" {
		return model.ColumnMapping{Date: date, Description: desc, Amount: amount}, true
	}
	return model.ColumnMapping{}, false
}

// findHeader returns the first header matching any alias, in alias
// priority order, skipping headers already claimed by another field.
func findHeader(headers, aliases []string, claimed map[string]bool) string {
	for _, alias := range aliases {
		a := normalize(alias)
		for _, h := range headers {
			if claimed[h] || h == "" {
				continue
			}
			if strings.Contains(normalize(h), a) {
				claimed[h] = true
				return h
			}
		}
	}
	return ""
}

// normalize lowercases and collapses whitespace, underscores, and
// dashes so "Posting_Date" and "posting-date" match "posting date".
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
