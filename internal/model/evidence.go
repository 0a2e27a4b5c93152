package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus is the processing state of an uploaded receipt.
type ReceiptStatus string

const (
	ReceiptStatusPending   ReceiptStatus = "pending"
	ReceiptStatusCompleted ReceiptStatus = "completed"
)

// Receipt is recorded spend evidence extracted from an uploaded receipt.
type Receipt struct {
	ID       string
	Merchant string
	Amount   decimal.Decimal
	Date     time.Time
	Status   ReceiptStatus
}

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOpen   PurchaseOrderStatus = "open"
	PurchaseOrderStatusClosed PurchaseOrderStatus = "closed"
)

// PurchaseOrder is pre-approved spend evidence.
type PurchaseOrder struct {
	ID     string
	Vendor string
	Amount decimal.Decimal
	Date   time.Time
	Status PurchaseOrderStatus
}
