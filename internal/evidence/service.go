// Package evidence provides in-memory lookup over recorded spend
// evidence (receipts and purchase orders) and builds the candidate pool
// the matching engine consumes.
package evidence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/settled-dev/settled/internal/id"
	"github.com/settled-dev/settled/internal/match"
	"github.com/settled-dev/settled/internal/model"
)

const (
	evidenceDir        = "evidence"
	receiptsFile       = "receipts.csv"
	purchaseOrdersFile = "purchase-orders.csv"
)

// Service provides lookup over loaded evidence records.
type Service struct {
	receipts []model.Receipt
	orders   []model.PurchaseOrder

	receiptByID map[string]model.Receipt
	orderByID   map[string]model.PurchaseOrder
}

// NewService creates a Service from in-memory records.
func NewService(receipts []model.Receipt, orders []model.PurchaseOrder) *Service {
	receiptByID := make(map[string]model.Receipt, len(receipts))
	for _, r := range receipts {
		receiptByID[r.ID] = r
	}
	orderByID := make(map[string]model.PurchaseOrder, len(orders))
	for _, o := range orders {
		orderByID[o.ID] = o
	}
	return &Service{receipts: receipts, orders: orders, receiptByID: receiptByID, orderByID: orderByID}
}

// Load reads evidence CSVs from <dataRoot>/evidence/. Missing files are
// treated as empty.
func Load(dataRoot string) (*Service, error) {
	receipts, err := loadReceipts(filepath.Join(dataRoot, evidenceDir, receiptsFile))
	if err != nil {
		return nil, err
	}
	orders, err := loadPurchaseOrders(filepath.Join(dataRoot, evidenceDir, purchaseOrdersFile))
	if err != nil {
		return nil, err
	}
	return NewService(receipts, orders), nil
}

func loadReceipts(path string) ([]model.Receipt, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening receipts: %w", err)
	}
	defer f.Close()
	return ReadReceipts(f)
}

func loadPurchaseOrders(path string) ([]model.PurchaseOrder, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening purchase orders: %w", err)
	}
	defer f.Close()
	return ReadPurchaseOrders(f)
}

// AddReceipt appends a receipt, assigning an ID when missing, and
// returns the stored record. Call Save to persist.
func (s *Service) AddReceipt(r model.Receipt) model.Receipt {
	if r.ID == "" {
		r.ID = id.NewReceiptID()
	}
	s.receipts = append(s.receipts, r)
	s.receiptByID[r.ID] = r
	return r
}

// AddPurchaseOrder appends a purchase order, assigning an ID when
// missing, and returns the stored record. Call Save to persist.
func (s *Service) AddPurchaseOrder(o model.PurchaseOrder) model.PurchaseOrder {
	if o.ID == "" {
		o.ID = id.NewPurchaseOrderID()
	}
	s.orders = append(s.orders, o)
	s.orderByID[o.ID] = o
	return o
}

// Receipts returns all loaded receipts.
func (s *Service) Receipts() []model.Receipt { return s.receipts }

// PurchaseOrders returns all loaded purchase orders.
func (s *Service) PurchaseOrders() []model.PurchaseOrder { return s.orders }

// Receipt returns a receipt by ID.
func (s *Service) Receipt(id string) (model.Receipt, bool) {
	r, ok := s.receiptByID[id]
	return r, ok
}

// PurchaseOrder returns a purchase order by ID.
func (s *Service) PurchaseOrder(id string) (model.PurchaseOrder, bool) {
	o, ok := s.orderByID[id]
	return o, ok
}

// Candidates builds the matching pool: completed receipts and open
// purchase orders. Pending receipts and closed orders are excluded.
func (s *Service) Candidates() []match.Candidate {
	var pool []match.Candidate
	for _, r := range s.receipts {
		if r.Status != model.ReceiptStatusCompleted {
			continue
		}
		pool = append(pool, match.Candidate{
			Type:   match.CandidateReceipt,
			ID:     r.ID,
			Amount: r.Amount,
			Date:   r.Date,
			Name:   r.Merchant,
		})
	}
	for _, o := range s.orders {
		if o.Status != model.PurchaseOrderStatusOpen {
			continue
		}
		pool = append(pool, match.Candidate{
			Type:   match.CandidatePurchaseOrder,
			ID:     o.ID,
			Amount: o.Amount,
			Date:   o.Date,
			Name:   o.Vendor,
		})
	}
	return pool
}

// Save writes both evidence CSVs under <dataRoot>/evidence/.
func (s *Service) Save(dataRoot string) error {
	dir := filepath.Join(dataRoot, evidenceDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating evidence dir: %w", err)
	}

	rf, err := os.Create(filepath.Join(dir, receiptsFile))
	if err != nil {
		return fmt.Errorf("creating receipts file: %w", err)
	}
	defer rf.Close()
	if err := WriteReceipts(rf, s.receipts); err != nil {
		return fmt.Errorf("writing receipts: %w", err)
	}

	pf, err := os.Create(filepath.Join(dir, purchaseOrdersFile))
	if err != nil {
		return fmt.Errorf("creating purchase orders file: %w", err)
	}
	defer pf.Close()
	if err := WritePurchaseOrders(pf, s.orders); err != nil {
		return fmt.Errorf("writing purchase orders: %w", err)
	}
	return nil
}
