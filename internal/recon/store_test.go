package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func seedStatement(t *testing.T, store *Store) (model.Statement, []model.Transaction) {
	t.Helper()

	stmt := model.Statement{
		OriginalFilename: "jan.csv",
		AccountLabel:     "checking",
		UploadedAt:       time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC),
		Covered:          model.DateRange{Start: day(2025, 1, 1), End: day(2025, 1, 3)},
		Status:           model.StatusCompleted,
		FormatName:       "Generic",
		Mapping:          model.ColumnMapping{Date: "Date", Description: "Description", Amount: "Amount"},
	}
	txns := []model.Transaction{
		{ID: "txn_b", Date: day(2025, 1, 3), Description: "Refund", Amount: dec("10.00"), Polarity: model.PolarityCredit},
		{ID: "txn_a", Date: day(2025, 1, 1), Description: "Coffee", Amount: dec("4.50"), Polarity: model.PolarityDebit},
	}

	created, err := store.CreateStatement(stmt, txns)
	require.NoError(t, err)
	return created, txns
}

func TestCreateAndReadBack(t *testing.T) {
	store := NewStore(t.TempDir())
	created, _ := seedStatement(t, store)
	assert.NotEmpty(t, created.ID)

	got, err := store.Statement(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jan.csv", got.OriginalFilename)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, day(2025, 1, 1), got.Covered.Start)
	assert.Equal(t, "Amount", got.Mapping.Amount)

	txns, err := store.Transactions(created.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, created.ID, txns[0].StatementID, "transactions stamped with statement ID")
}

func TestTransactions_DateAscending(t *testing.T) {
	store := NewStore(t.TempDir())
	created, _ := seedStatement(t, store)

	txns, err := store.Transactions(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", txns[0].Description)
	assert.Equal(t, "Refund", txns[1].Description)
}

func TestStatement_NotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Statement("stmt_nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply_PersistsMatch(t *testing.T) {
	store := NewStore(t.TempDir())
	seedStatement(t, store)

	got, err := store.Apply("txn_a", Action{Kind: ActionMatchReceipt, TargetID: "rcpt_1"})
	require.NoError(t, err)
	assert.Equal(t, "rcpt_1", got.MatchedReceiptID)

	// Survives a fresh read.
	reloaded, err := store.Transaction("txn_a")
	require.NoError(t, err)
	assert.Equal(t, "rcpt_1", reloaded.MatchedReceiptID)
}

func TestApply_ConflictLeavesStateUntouched(t *testing.T) {
	store := NewStore(t.TempDir())
	seedStatement(t, store)

	_, err := store.Apply("txn_a", Action{Kind: ActionMatchReceipt, TargetID: "rcpt_1"})
	require.NoError(t, err)

	_, err = store.Apply("txn_a", Action{Kind: ActionMatchPurchaseOrder, TargetID: "po_1"})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := store.Transaction("txn_a")
	require.NoError(t, err)
	assert.Equal(t, "rcpt_1", got.MatchedReceiptID)
	assert.Empty(t, got.MatchedPurchaseOrderID)
}

func TestApply_UnknownTransaction(t *testing.T) {
	store := NewStore(t.TempDir())
	seedStatement(t, store)

	_, err := store.Apply("txn_missing", Action{Kind: ActionUnmatch})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStatement_Cascades(t *testing.T) {
	store := NewStore(t.TempDir())
	created, _ := seedStatement(t, store)

	require.NoError(t, store.DeleteStatement(created.ID))

	_, err := store.Statement(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Transaction("txn_a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStatement_NotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.ErrorIs(t, store.DeleteStatement("stmt_nope"), ErrNotFound)
}

func TestCreateStatement_DuplicateID(t *testing.T) {
	store := NewStore(t.TempDir())
	created, _ := seedStatement(t, store)

	_, err := store.CreateStatement(model.Statement{ID: created.ID}, nil)
	assert.Error(t, err)
}

func TestCreateStatement_UnknownCoveredRange(t *testing.T) {
	store := NewStore(t.TempDir())

	created, err := store.CreateStatement(model.Statement{
		OriginalFilename: "bad.csv",
		UploadedAt:       time.Now().UTC(),
		Status:           model.StatusFailed,
	}, nil)
	require.NoError(t, err)

	got, err := store.Statement(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Covered.IsZero(), "unknown range survives the round trip")
	assert.Equal(t, model.StatusFailed, got.Status)
}
