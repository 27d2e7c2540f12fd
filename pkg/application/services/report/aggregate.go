// Package report folds record snapshots into chart-ready rows and scalar
// roll-ups. Every function recomputes from its input on each call.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// Dimension selects how records are grouped
type Dimension string

const (
	ByCategory Dimension = "category"
	ByStatus   Dimension = "status"
	ByItemKind Dimension = "itemKind"
)

// ParseDimension parses a dimension name case-insensitively
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category":
		return ByCategory, nil
	case "status":
		return ByStatus, nil
	case "itemkind", "item_kind", "kind", "type":
		return ByItemKind, nil
	default:
		return "", fmt.Errorf("invalid dimension: %s (expected category, status, or itemKind)", s)
	}
}

// Row is one label/value pair of an aggregation
type Row struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Aggregate groups records along dim:
//   - ByCategory sums quantity per category, in first-encountered order
//   - ByStatus counts records per stock status, always three rows
//   - ByItemKind counts records per kind, always two rows
func Aggregate(records []entities.InventoryRecord, dim Dimension) ([]Row, error) {
	switch dim {
	case ByCategory:
		return quantityByCategory(records), nil
	case ByStatus:
		counts := make(map[entities.StockStatus]int64, len(entities.StockStatuses))
		for _, r := range records {
			counts[entities.Classify(r)]++
		}
		rows := make([]Row, 0, len(entities.StockStatuses))
		for _, status := range entities.StockStatuses {
			rows = append(rows, Row{Label: status.String(), Value: counts[status]})
		}
		return rows, nil
	case ByItemKind:
		counts := make(map[entities.ItemKind]int64, len(entities.ItemKinds))
		for _, r := range records {
			counts[r.ItemKind]++
		}
		rows := make([]Row, 0, len(entities.ItemKinds))
		for _, kind := range entities.ItemKinds {
			rows = append(rows, Row{Label: kind.String(), Value: counts[kind]})
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported dimension: %q", dim)
	}
}

func quantityByCategory(records []entities.InventoryRecord) []Row {
	positions := make(map[string]int)
	rows := []Row{}
	for _, r := range records {
		pos, seen := positions[r.Category]
		if !seen {
			pos = len(rows)
			positions[r.Category] = pos
			rows = append(rows, Row{Label: r.Category})
		}
		rows[pos].Value += int64(r.Quantity)
	}
	return rows
}

// ValueRow is one category's stock value
type ValueRow struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// AggregateValue sums quantity * unitPrice per category at full precision,
// in first-encountered order.
func AggregateValue(records []entities.InventoryRecord) []ValueRow {
	positions := make(map[string]int)
	rows := []ValueRow{}
	for _, r := range records {
		pos, seen := positions[r.Category]
		if !seen {
			pos = len(rows)
			positions[r.Category] = pos
			rows = append(rows, ValueRow{Label: r.Category, Value: decimal.Zero})
		}
		rows[pos].Value = rows[pos].Value.Add(r.Value())
	}
	return rows
}
