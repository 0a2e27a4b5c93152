package evidence

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/model"
)

// ReceiptsHeader is the CSV header for receipts.csv.
const ReceiptsHeader = "id,merchant,amount,date,status"

// PurchaseOrdersHeader is the CSV header for purchase-orders.csv.
const PurchaseOrdersHeader = "id,vendor,amount,date,status"

const (
	numFields  = 5
	dateFormat = "2006-01-02"
	colID      = 0
	colName    = 1
	colAmount  = 2
	colDate    = 3
	colStatus  = 4
)

// ReadReceipts reads all receipts from a receipts.csv reader.
func ReadReceipts(r io.Reader) ([]model.Receipt, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading receipts CSV: %w", err)
	}

	var receipts []model.Receipt
	for i, rec := range records {
		id, name, amount, date, status, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		receipts = append(receipts, model.Receipt{
			ID:       id,
			Merchant: name,
			Amount:   amount,
			Date:     date,
			Status:   model.ReceiptStatus(status),
		})
	}
	return receipts, nil
}

// ReadPurchaseOrders reads all purchase orders from a
// purchase-orders.csv reader.
func ReadPurchaseOrders(r io.Reader) ([]model.PurchaseOrder, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading purchase orders CSV: %w", err)
	}

	var orders []model.PurchaseOrder
	for i, rec := range records {
		id, name, amount, date, status, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		orders = append(orders, model.PurchaseOrder{
			ID:     id,
			Vendor: name,
			Amount: amount,
			Date:   date,
			Status: model.PurchaseOrderStatus(status),
		})
	}
	return orders, nil
}

// WriteReceipts writes receipts (including header) to w.
func WriteReceipts(w io.Writer, receipts []model.Receipt) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ReceiptsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range receipts {
		row := marshalRow(r.ID, r.Merchant, r.Amount, r.Date, string(r.Status))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WritePurchaseOrders writes purchase orders (including header) to w.
func WritePurchaseOrders(w io.Writer, orders []model.PurchaseOrder) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(PurchaseOrdersHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, o := range orders {
		row := marshalRow(o.ID, o.Vendor, o.Amount, o.Date, string(o.Status))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func readRecords(r io.Reader) ([][]string, error) {
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

func marshalRow(id, name string, amount decimal.Decimal, date time.Time, status string) []string {
	row := make([]string, numFields)
	row[colID] = id
	row[colName] = name
	row[colAmount] = amount.StringFixed(2)
	row[colDate] = date.Format(dateFormat)
	row[colStatus] = status
	return row
}

func unmarshalRow(record []string) (id, name string, amount decimal.Decimal, date time.Time, status string, err error) {
	if len(record) != numFields {
		err = fmt.Errorf("expected %d fields, got %d", numFields, len(record))
		return
	}

	amount, err = decimal.NewFromString(record[colAmount])
	if err != nil {
		err = fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		return
	}

	date, err = time.Parse(dateFormat, record[colDate])
	if err != nil {
		err = fmt.Errorf("parsing date %q: %w", record[colDate], err)
		return
	}

	return record[colID], record[colName], amount, date, record[colStatus], nil
}
