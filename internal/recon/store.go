package recon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/settled-dev/settled/internal/id"
	"github.com/settled-dev/settled/internal/model"
)

// ErrNotFound means the requested statement or transaction does not
// exist.
var ErrNotFound = errors.New("record not found")

const (
	statementsFile   = "statements.csv"
	transactionsFile = "transactions.csv"
)

// Store persists statements and transactions as CSV files under a data
// directory. All mutations are serialized through a mutex and each
// mutation is a single read-modify-write of the backing file, written
// atomically via rename, so concurrent match commits cannot interleave.
type Store struct {
	dataRoot string
	mu       sync.Mutex
}

// NewStore creates a Store rooted at dataRoot.
func NewStore(dataRoot string) *Store {
	return &Store{dataRoot: dataRoot}
}

// CreateStatement persists a statement and its transactions. A missing
// statement ID is assigned; every transaction is stamped with it.
func (s *Store) CreateStatement(stmt model.Statement, txns []model.Transaction) (model.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stmt.ID == "" {
		stmt.ID = id.NewStatementID()
	}

	stmts, err := s.readStatements()
	if err != nil {
		return model.Statement{}, err
	}
	for _, existing := range stmts {
		if existing.ID == stmt.ID {
			return model.Statement{}, fmt.Errorf("statement %s already exists", stmt.ID)
		}
	}
	stmts = append(stmts, stmt)

	all, err := s.readTransactions()
	if err != nil {
		return model.Statement{}, err
	}
	for i := range txns {
		txns[i].StatementID = stmt.ID
	}
	all = append(all, txns...)

	if err := s.writeStatements(stmts); err != nil {
		return model.Statement{}, err
	}
	if err := s.writeTransactions(all); err != nil {
		return model.Statement{}, err
	}
	return stmt, nil
}

// Statements returns all statements, newest upload last.
func (s *Store) Statements() ([]model.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readStatements()
}

// Statement returns one statement by ID.
func (s *Store) Statement(stmtID string) (model.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts, err := s.readStatements()
	if err != nil {
		return model.Statement{}, err
	}
	for _, st := range stmts {
		if st.ID == stmtID {
			return st, nil
		}
	}
	return model.Statement{}, fmt.Errorf("statement %s: %w", stmtID, ErrNotFound)
}

// Transactions returns a statement's transactions, date ascending.
func (s *Store) Transactions(stmtID string) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readTransactions()
	if err != nil {
		return nil, err
	}
	var txns []model.Transaction
	for _, t := range all {
		if t.StatementID == stmtID {
			txns = append(txns, t)
		}
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})
	return txns, nil
}

// Transaction returns one transaction by ID.
func (s *Store) Transaction(txnID string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTransaction(txnID)
}

// Apply runs a match state transition against the stored transaction as
// one atomic read-modify-write. The returned transaction is the
// persisted state.
func (s *Store) Apply(txnID string, a Action) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readTransactions()
	if err != nil {
		return model.Transaction{}, err
	}

	idx := -1
	for i, t := range all {
		if t.ID == txnID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}

	updated, err := Transition(all[idx], a)
	if err != nil {
		return all[idx], err
	}
	if sameMatchState(updated, all[idx]) {
		return updated, nil // no-op, skip the rewrite
	}

	all[idx] = updated
	if err := s.writeTransactions(all); err != nil {
		return model.Transaction{}, err
	}
	return updated, nil
}

// DeleteStatement removes a statement and cascades to its transactions.
func (s *Store) DeleteStatement(stmtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts, err := s.readStatements()
	if err != nil {
		return err
	}
	kept := stmts[:0]
	found := false
	for _, st := range stmts {
		if st.ID == stmtID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return fmt.Errorf("statement %s: %w", stmtID, ErrNotFound)
	}

	all, err := s.readTransactions()
	if err != nil {
		return err
	}
	keptTxns := all[:0]
	for _, t := range all {
		if t.StatementID != stmtID {
			keptTxns = append(keptTxns, t)
		}
	}

	if err := s.writeStatements(kept); err != nil {
		return err
	}
	return s.writeTransactions(keptTxns)
}

func sameMatchState(a, b model.Transaction) bool {
	return a.MatchedReceiptID == b.MatchedReceiptID &&
		a.MatchedPurchaseOrderID == b.MatchedPurchaseOrderID &&
		a.NoEvidenceRequired == b.NoEvidenceRequired
}

func (s *Store) findTransaction(txnID string) (model.Transaction, error) {
	all, err := s.readTransactions()
	if err != nil {
		return model.Transaction{}, err
	}
	for _, t := range all {
		if t.ID == txnID {
			return t, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
}

func (s *Store) readStatements() ([]model.Statement, error) {
	f, err := os.Open(filepath.Join(s.dataRoot, statementsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening statements: %w", err)
	}
	defer f.Close()
	return ReadStatements(f)
}

func (s *Store) readTransactions() ([]model.Transaction, error) {
	f, err := os.Open(filepath.Join(s.dataRoot, transactionsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()
	return ReadTransactions(f)
}

func (s *Store) writeStatements(stmts []model.Statement) error {
	return writeAtomic(filepath.Join(s.dataRoot, statementsFile), func(w io.Writer) error {
		return WriteStatements(w, stmts)
	})
}

func (s *Store) writeTransactions(txns []model.Transaction) error {
	return writeAtomic(filepath.Join(s.dataRoot, transactionsFile), func(w io.Writer) error {
		return WriteTransactions(w, txns)
	})
}

// writeAtomic writes to a temp file in the same directory and renames
// it over the target, so readers never observe a partial file.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
