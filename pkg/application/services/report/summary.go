package report

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// Summary holds scalar roll-ups over a record set. TotalValue is kept at
// full precision; round only for display.
type Summary struct {
	TotalItems      int               `json:"totalItems"`
	TotalQuantity   entities.Quantity `json:"totalQuantity"`
	LowStockCount   int               `json:"lowStockCount"`
	OutOfStockCount int               `json:"outOfStockCount"`
	TotalValue      decimal.Decimal   `json:"totalValue"`
}

// Summarize computes a fresh Summary over records
func Summarize(records []entities.InventoryRecord) Summary {
	summary := Summary{TotalValue: decimal.Zero}
	for _, r := range records {
		summary.TotalItems++
		summary.TotalQuantity += r.Quantity
		summary.TotalValue = summary.TotalValue.Add(r.Value())

		switch entities.Classify(r) {
		case entities.LowStock:
			summary.LowStockCount++
		case entities.OutOfStock:
			summary.OutOfStockCount++
		}
	}
	return summary
}

// FormattedTotalValue renders TotalValue with exactly two decimal places
func (s Summary) FormattedTotalValue() string {
	return s.TotalValue.StringFixed(2)
}
