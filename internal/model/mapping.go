package model

// ColumnMapping identifies which statement headers carry each semantic
// field. Either Amount is set, or both Debit and Credit are. Immutable
// once a statement is parsed; persisted for re-parsing and debugging.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
}

// UsesSplitColumns reports whether the mapping uses separate debit and
// credit columns instead of a single signed amount column.
func (m ColumnMapping) UsesSplitColumns() bool {
	return m.Amount == "" && m.Debit != "" && m.Credit != ""
}

// Complete reports whether the mapping can drive a parse: date and
// description plus an amount column or a debit/credit pair.
func (m ColumnMapping) Complete() bool {
	if m.Date == "" || m.Description == "" {
		return false
	}
	return m.Amount != "" || (m.Debit != "" && m.Credit != "")
}
