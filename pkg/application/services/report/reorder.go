package report

import (
	"sort"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// ReorderLine is a record that needs restocking. Shortfall is the number
// of units needed to move the record to InStock.
type ReorderLine struct {
	Record    entities.InventoryRecord `json:"record"`
	Status    entities.StockStatus     `json:"status"`
	Shortfall entities.Quantity        `json:"shortfall"`
}

// ReorderList returns every OutOfStock or LowStock record, OutOfStock
// first, each group in input order.
func ReorderList(records []entities.InventoryRecord) []ReorderLine {
	lines := []ReorderLine{}
	for _, r := range records {
		status := entities.Classify(r)
		if status == entities.InStock {
			continue
		}
		lines = append(lines, ReorderLine{
			Record:    r,
			Status:    status,
			Shortfall: shortfall(r),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Status < lines[j].Status
	})
	return lines
}

// shortfall is only meaningful for records that are not InStock, where
// quantity <= threshold or quantity == 0.
func shortfall(r entities.InventoryRecord) entities.Quantity {
	return r.Threshold - r.Quantity + 1
}
