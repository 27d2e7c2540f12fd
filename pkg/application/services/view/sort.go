package view

import (
	"fmt"
	"strings"
)

// SortField names the record field a view is ordered by
type SortField string

const (
	// SortNone keeps store order
	SortNone        SortField = ""
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortByQuantity  SortField = "quantity"
	SortByUnitPrice SortField = "unitPrice"
)

// SortOrder represents ascending or descending order
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// String method for SortOrder enum
func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "unknown"
	}
}

// Sort specifies view ordering
type Sort struct {
	Field SortField
	Order SortOrder
}

// ParseSortField parses a field name case-insensitively
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortByName, nil
	case "category":
		return SortByCategory, nil
	case "quantity", "qty":
		return SortByQuantity, nil
	case "unitprice", "unit_price", "price":
		return SortByUnitPrice, nil
	default:
		return SortNone, fmt.Errorf("invalid sort field: %s (expected name, category, quantity, or unitPrice)", s)
	}
}

// ParseSortOrder parses "asc"/"ascending" or "desc"/"descending"
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid sort order: %s (expected asc or desc)", s)
	}
}
