package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/domain/entities"
)

// RecordView is a record paired with its derived status and value
type RecordView struct {
	entities.InventoryRecord
	Status entities.StockStatus `json:"status"`
	Value  decimal.Decimal      `json:"value"`
}

// NewRecordView derives status and value from r
func NewRecordView(r entities.InventoryRecord) RecordView {
	return RecordView{InventoryRecord: r, Status: r.Status(), Value: r.Value()}
}

// InventoryReport contains everything a host renders for one view of the store
type InventoryReport struct {
	GeneratedAt   time.Time            `json:"generatedAt"`
	Records       []RecordView         `json:"records"`
	Summary       report.Summary       `json:"summary"`
	Grouping      report.Dimension     `json:"grouping"`
	Groups        []report.Row         `json:"groups"`
	CategoryValue []report.ValueRow    `json:"categoryValue"`
	Reorder       []report.ReorderLine `json:"reorder"`
	Categories    []string             `json:"categories"`
}
