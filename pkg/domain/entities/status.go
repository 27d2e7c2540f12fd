package entities

import (
	"fmt"
	"strings"
)

// StockStatus represents the derived stock health of a record. It is
// never stored; see Classify.
type StockStatus int

const (
	OutOfStock StockStatus = iota
	LowStock
	InStock
)

// StockStatuses lists every status in reporting order
var StockStatuses = []StockStatus{OutOfStock, LowStock, InStock}

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case OutOfStock:
		return "OutOfStock"
	case LowStock:
		return "LowStock"
	case InStock:
		return "InStock"
	default:
		return "Unknown"
	}
}

func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StockStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStockStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStockStatus parses a status name case-insensitively. Underscores,
// hyphens and spaces are ignored so "low-stock" and "LOW_STOCK" both work.
func ParseStockStatus(s string) (StockStatus, error) {
	normalized := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch normalized {
	case "outofstock":
		return OutOfStock, nil
	case "lowstock":
		return LowStock, nil
	case "instock":
		return InStock, nil
	default:
		return 0, fmt.Errorf("invalid stock status: %s (expected OutOfStock, LowStock, or InStock)", s)
	}
}

// Classify maps a record to its stock status. A zero threshold means the
// record has no reorder point, so any positive quantity is InStock.
func Classify(r InventoryRecord) StockStatus {
	switch {
	case r.Quantity <= 0:
		return OutOfStock
	case r.Threshold > 0 && r.Quantity <= r.Threshold:
		return LowStock
	default:
		return InStock
	}
}
