package statement

import (
	"errors"

	"github.com/settled-dev/settled/internal/layout"
	"github.com/settled-dev/settled/internal/tabular"
)

// Machine-stable failure reasons for the parse result contract.
const (
	ReasonEmptyFile          = "empty_file"
	ReasonUnsupportedFormat  = "unsupported_format"
	ReasonUnrecognizedLayout = "unrecognized_layout"
	ReasonNoTransactions     = "no_transactions"
	ReasonInvalidMapping     = "invalid_mapping"
	ReasonParseError         = "parse_error"
)

// FailureReason maps a parse error to its stable reason string.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, tabular.ErrEmptyFile):
		return ReasonEmptyFile
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return ReasonUnsupportedFormat
	case errors.Is(err, layout.ErrUnrecognizedLayout):
		return ReasonUnrecognizedLayout
	case errors.Is(err, ErrNoTransactions):
		return ReasonNoTransactions
	case errors.Is(err, ErrInvalidMapping):
		return ReasonInvalidMapping
	default:
		return ReasonParseError
	}
}
