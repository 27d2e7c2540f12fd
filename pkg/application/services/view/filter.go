package view

import (
	"strings"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// All is the filter value that disables the kind and status predicates
const All = "all"

// Filter holds the optional view predicates. Zero values match everything;
// set predicates are combined with logical AND.
type Filter struct {
	// Search is matched case-insensitively as a substring of name,
	// category, supplier and notes.
	Search   string
	Category string
	Kind     entities.ItemKind
	Status   *entities.StockStatus
}

// Matches reports whether record satisfies every set predicate
func (f Filter) Matches(record entities.InventoryRecord) bool {
	if f.Category != "" && record.Category != f.Category {
		return false
	}
	if f.Kind != "" && f.Kind != All && record.ItemKind != f.Kind {
		return false
	}
	if f.Status != nil && entities.Classify(record) != *f.Status {
		return false
	}
	return matchesSearch(record, f.Search)
}

func matchesSearch(record entities.InventoryRecord, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range []string{record.Name, record.Category, record.Supplier, record.Notes} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ParseKindFilter parses a kind predicate; "" and "all" match every kind
func ParseKindFilter(s string) (entities.ItemKind, error) {
	if isAll(s) {
		return "", nil
	}
	return entities.ParseItemKind(s)
}

// ParseStatusFilter parses a status predicate; "" and "all" return nil
func ParseStatusFilter(s string) (*entities.StockStatus, error) {
	if isAll(s) {
		return nil, nil
	}
	status, err := entities.ParseStockStatus(s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, All)
}
