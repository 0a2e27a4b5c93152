package evidence

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settled-dev/settled/internal/match"
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

func sampleService() *Service {
	receipts := []model.Receipt{
		{ID: "rcpt_1", Merchant: "Coffee House", Amount: dec("4.50"), Date: day(2025, 1, 1), Status: model.ReceiptStatusCompleted},
		{ID: "rcpt_2", Merchant: "Pending Shop", Amount: dec("9.99"), Date: day(2025, 1, 2), Status: model.ReceiptStatusPending},
	}
	orders := []model.PurchaseOrder{
		{ID: "po_1", Vendor: "ACME Widgets", Amount: dec("120.00"), Date: day(2025, 1, 3), Status: model.PurchaseOrderStatusOpen},
		{ID: "po_2", Vendor: "Closed Vendor", Amount: dec("50.00"), Date: day(2025, 1, 4), Status: model.PurchaseOrderStatusClosed},
	}
	return NewService(receipts, orders)
}

func TestCandidates_FiltersByStatus(t *testing.T) {
	pool := sampleService().Candidates()
	require.Len(t, pool, 2)
	assert.Equal(t, match.CandidateReceipt, pool[0].Type)
	assert.Equal(t, "rcpt_1", pool[0].ID)
	assert.Equal(t, "Coffee House", pool[0].Name)
	assert.Equal(t, match.CandidatePurchaseOrder, pool[1].Type)
	assert.Equal(t, "po_1", pool[1].ID)
}

func TestLookups(t *testing.T) {
	svc := sampleService()

	r, ok := svc.Receipt("rcpt_2")
	require.True(t, ok)
	assert.Equal(t, "Pending Shop", r.Merchant)

	_, ok = svc.Receipt("rcpt_nope")
	assert.False(t, ok)

	o, ok := svc.PurchaseOrder("po_1")
	require.True(t, ok)
	assert.Equal(t, "ACME Widgets", o.Vendor)
}

func TestAdd(t *testing.T) {
	svc := NewService(nil, nil)

	r := svc.AddReceipt(model.Receipt{Merchant: "Coffee House", Amount: dec("4.50"), Date: day(2025, 1, 1), Status: model.ReceiptStatusCompleted})
	assert.True(t, strings.HasPrefix(r.ID, "rcpt_"))

	o := svc.AddPurchaseOrder(model.PurchaseOrder{Vendor: "ACME", Amount: dec("10.00"), Date: day(2025, 1, 2), Status: model.PurchaseOrderStatusOpen})
	assert.True(t, strings.HasPrefix(o.ID, "po_"))

	_, ok := svc.Receipt(r.ID)
	assert.True(t, ok)
	assert.Len(t, svc.Candidates(), 2)

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, loaded.Receipts(), 1)
	assert.Len(t, loaded.PurchaseOrders(), 1)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, sampleService().Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, loaded.Receipts(), 2)
	assert.Len(t, loaded.PurchaseOrders(), 2)

	r, ok := loaded.Receipt("rcpt_1")
	require.True(t, ok)
	assert.True(t, r.Amount.Equal(dec("4.50")))
	assert.Equal(t, day(2025, 1, 1), r.Date)
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	svc, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, svc.Receipts())
	assert.Empty(t, svc.PurchaseOrders())
	assert.Empty(t, svc.Candidates())
}

func TestReadReceipts_BadRow(t *testing.T) {
	in := ReceiptsHeader + "\nrcpt_1,Coffee,notanumber,2025-01-01,completed\n"
	_, err := ReadReceipts(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestReadPurchaseOrders_BadDate(t *testing.T) {
	in := PurchaseOrdersHeader + "\npo_1,ACME,10.00,NOTADATE,open\n"
	_, err := ReadPurchaseOrders(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}
