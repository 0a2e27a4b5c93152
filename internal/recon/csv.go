package recon

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/model"
)

// StatementsHeader is the CSV header for statements.csv.
const StatementsHeader = "id,original_filename,account_label,uploaded_at,covered_start,covered_end,status,format,date_column,description_column,amount_column,debit_column,credit_column"

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "id,statement_id,date,description,amount,polarity,matched_receipt_id,matched_purchase_order_id,no_evidence_required"

const dateFormat = "2006-01-02"

const (
	stmtNumFields = 13
	stmtColID     = 0
	stmtColFile   = 1
	stmtColLabel  = 2
	stmtColUpAt   = 3
	stmtColStart  = 4
	stmtColEnd    = 5
	stmtColStatus = 6
	stmtColFormat = 7
	stmtColDate   = 8
	stmtColDesc   = 9
	stmtColAmount = 10
	stmtColDebit  = 11
	stmtColCredit = 12
)

const (
	txnNumFields = 9
	txnColID     = 0
	txnColStmtID = 1
	txnColDate   = 2
	txnColDesc   = 3
	txnColAmount = 4
	txnColPolar  = 5
	txnColRcpt   = 6
	txnColPO     = 7
	txnColNoEv   = 8
)

// MarshalStatement converts a Statement to a CSV row.
func MarshalStatement(s model.Statement) []string {
	row := make([]string, stmtNumFields)
	row[stmtColID] = s.ID
	row[stmtColFile] = s.OriginalFilename
	row[stmtColLabel] = s.AccountLabel
	row[stmtColUpAt] = s.UploadedAt.UTC().Format(time.RFC3339)
	if !s.Covered.Start.IsZero() {
		row[stmtColStart] = s.Covered.Start.Format(dateFormat)
	}
	if !s.Covered.End.IsZero() {
		row[stmtColEnd] = s.Covered.End.Format(dateFormat)
	}
	row[stmtColStatus] = string(s.Status)
	row[stmtColFormat] = s.FormatName
	row[stmtColDate] = s.Mapping.Date
	row[stmtColDesc] = s.Mapping.Description
	row[stmtColAmount] = s.Mapping.Amount
	row[stmtColDebit] = s.Mapping.Debit
	row[stmtColCredit] = s.Mapping.Credit
	return row
}

// UnmarshalStatement converts a CSV row to a Statement.
func UnmarshalStatement(record []string) (model.Statement, error) {
	if len(record) != stmtNumFields {
		return model.Statement{}, fmt.Errorf("expected %d fields, got %d", stmtNumFields, len(record))
	}

	uploadedAt, err := time.Parse(time.RFC3339, record[stmtColUpAt])
	if err != nil {
		return model.Statement{}, fmt.Errorf("parsing uploaded_at %q: %w", record[stmtColUpAt], err)
	}

	var covered model.DateRange
	if record[stmtColStart] != "" {
		covered.Start, err = time.Parse(dateFormat, record[stmtColStart])
		if err != nil {
			return model.Statement{}, fmt.Errorf("parsing covered_start %q: %w", record[stmtColStart], err)
		}
	}
	if record[stmtColEnd] != "" {
		covered.End, err = time.Parse(dateFormat, record[stmtColEnd])
		if err != nil {
			return model.Statement{}, fmt.Errorf("parsing covered_end %q: %w", record[stmtColEnd], err)
		}
	}

	return model.Statement{
		ID:               record[stmtColID],
		OriginalFilename: record[stmtColFile],
		AccountLabel:     record[stmtColLabel],
		UploadedAt:       uploadedAt,
		Covered:          covered,
		Status:           model.StatementStatus(record[stmtColStatus]),
		FormatName:       record[stmtColFormat],
		Mapping: model.ColumnMapping{
			Date:        record[stmtColDate],
			Description: record[stmtColDesc],
			Amount:      record[stmtColAmount],
			Debit:       record[stmtColDebit],
			Credit:      record[stmtColCredit],
		},
	}, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[txnColID] = t.ID
	row[txnColStmtID] = t.StatementID
	row[txnColDate] = t.Date.Format(dateFormat)
	row[txnColDesc] = t.Description
	row[txnColAmount] = t.Amount.StringFixed(2)
	row[txnColPolar] = string(t.Polarity)
	row[txnColRcpt] = t.MatchedReceiptID
	row[txnColPO] = t.MatchedPurchaseOrderID
	if t.NoEvidenceRequired {
		row[txnColNoEv] = "true"
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txnNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txnNumFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[txnColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txnColDate], err)
	}

	amount, err := decimal.NewFromString(record[txnColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txnColAmount], err)
	}

	return model.Transaction{
		ID:                     record[txnColID],
		StatementID:            record[txnColStmtID],
		Date:                   date,
		Description:            record[txnColDesc],
		Amount:                 amount,
		Polarity:               model.Polarity(record[txnColPolar]),
		MatchedReceiptID:       record[txnColRcpt],
		MatchedPurchaseOrderID: record[txnColPO],
		NoEvidenceRequired:     record[txnColNoEv] == "true",
	}, nil
}

// ReadStatements reads all statements from a statements.csv reader.
func ReadStatements(r io.Reader) ([]model.Statement, error) {
	records, err := readRecords(r, stmtNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading statements CSV: %w", err)
	}

	var stmts []model.Statement
	for i, rec := range records {
		s, err := UnmarshalStatement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	records, err := readRecords(r, txnNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	var txns []model.Transaction
	for i, rec := range records {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteStatements writes statements (including header) to w.
func WriteStatements(w io.Writer, stmts []model.Statement) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(StatementsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, s := range stmts {
		if err := cw.Write(MarshalStatement(s)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteTransactions writes transactions (including header) to w.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func readRecords(r io.Reader, numFields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}
