package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prefixes for each record kind. IDs look like "txn_4f9d...".
const (
	PrefixStatement     = "stmt"
	PrefixTransaction   = "txn"
	PrefixReceipt       = "rcpt"
	PrefixPurchaseOrder = "po"
)

// NewStatementID returns a fresh statement ID.
func NewStatementID() string { return newID(PrefixStatement) }

// NewTransactionID returns a fresh transaction ID.
func NewTransactionID() string { return newID(PrefixTransaction) }

// NewReceiptID returns a fresh receipt ID.
func NewReceiptID() string { return newID(PrefixReceipt) }

// NewPurchaseOrderID returns a fresh purchase order ID.
func NewPurchaseOrderID() string { return newID(PrefixPurchaseOrder) }

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Kind returns the prefix of an ID, e.g. "txn" for "txn_4f9d...".
func Kind(id string) string {
	prefix, _, ok := strings.Cut(id, "_")
	if !ok {
		return ""
	}
	return prefix
}

// Validate checks that id has the expected prefix and a well-formed
// uuid body.
func Validate(id, prefix string) error {
	p, body, ok := strings.Cut(id, "_")
	if !ok || p != prefix {
		return fmt.Errorf("invalid %s ID: %q", prefix, id)
	}
	if _, err := uuid.Parse(body); err != nil {
		return fmt.Errorf("invalid %s ID %q: %w", prefix, id, err)
	}
	return nil
}
