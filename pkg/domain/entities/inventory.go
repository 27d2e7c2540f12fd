package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord represents one stock-keeping record
type InventoryRecord struct {
	ID          RecordID        `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	ItemKind    ItemKind        `json:"itemKind"`
	Quantity    Quantity        `json:"quantity"`
	Threshold   Quantity        `json:"threshold"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Supplier    string          `json:"supplier"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Notes       string          `json:"notes"`
}

// Status classifies the record from its current quantity and threshold
func (r InventoryRecord) Status() StockStatus {
	return Classify(r)
}

// Value returns quantity * unitPrice at full precision
func (r InventoryRecord) Value() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Validate checks every field invariant except id presence
func (r InventoryRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return &ValidationError{Field: "category", Message: "category cannot be empty"}
	}
	if strings.TrimSpace(r.Supplier) == "" {
		return &ValidationError{Field: "supplier", Message: "supplier cannot be empty"}
	}
	if !r.ItemKind.Valid() {
		return &ValidationError{
			Field:   "itemKind",
			Message: fmt.Sprintf("invalid item kind: %q (expected product or equipment)", r.ItemKind),
		}
	}
	if r.Quantity < 0 {
		return &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity cannot be negative, got %d", r.Quantity),
		}
	}
	if r.Threshold < 0 {
		return &ValidationError{
			Field:   "threshold",
			Message: fmt.Sprintf("threshold cannot be negative, got %d", r.Threshold),
		}
	}
	if r.UnitPrice.IsNegative() {
		return &ValidationError{
			Field:   "unitPrice",
			Message: fmt.Sprintf("unit price cannot be negative, got %s", r.UnitPrice.String()),
		}
	}
	return nil
}

// RecordInput holds the caller-supplied fields of a new record
type RecordInput struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	ItemKind  ItemKind        `json:"itemKind"`
	Quantity  Quantity        `json:"quantity"`
	Threshold Quantity        `json:"threshold"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Supplier  string          `json:"supplier"`
	Notes     string          `json:"notes"`
}

// NewInventoryRecord creates a validated InventoryRecord
func NewInventoryRecord(id RecordID, input RecordInput, lastUpdated time.Time) (*InventoryRecord, error) {
	if string(id) == "" {
		return nil, &ValidationError{Field: "id", Message: "id cannot be empty"}
	}

	record := &InventoryRecord{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		ItemKind:    input.ItemKind,
		Quantity:    input.Quantity,
		Threshold:   input.Threshold,
		UnitPrice:   input.UnitPrice,
		Supplier:    input.Supplier,
		LastUpdated: lastUpdated,
		Notes:       input.Notes,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// RecordPatch holds a partial update; nil fields are left unchanged
type RecordPatch struct {
	Name      *string          `json:"name,omitempty"`
	Category  *string          `json:"category,omitempty"`
	ItemKind  *ItemKind        `json:"itemKind,omitempty"`
	Quantity  *Quantity        `json:"quantity,omitempty"`
	Threshold *Quantity        `json:"threshold,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Supplier  *string          `json:"supplier,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

// Apply returns a copy of r with the patch merged in. The id and
// lastUpdated fields are never touched.
func (p RecordPatch) Apply(r InventoryRecord) InventoryRecord {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.ItemKind != nil {
		r.ItemKind = *p.ItemKind
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
	if p.Threshold != nil {
		r.Threshold = *p.Threshold
	}
	if p.UnitPrice != nil {
		r.UnitPrice = *p.UnitPrice
	}
	if p.Supplier != nil {
		r.Supplier = *p.Supplier
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	return r
}
