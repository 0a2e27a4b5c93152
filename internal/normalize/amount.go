package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrBadAmount means a cell could not be interpreted as a decimal amount.
var ErrBadAmount = errors.New("unparseable amount")

const currencySymbols = "$€£¥₹"

// Amount parses a raw cell value into a signed decimal. Currency
// symbols, thousands separators, and surrounding whitespace are
// stripped; a value wrapped in parentheses is negative.
func Amount(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty value", ErrBadAmount)
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) || r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrBadAmount, value)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
