package entities

import (
	"fmt"
	"strings"
)

// RecordID represents a unique inventory record identifier
type RecordID string

// Quantity represents an integer quantity value for discrete stock units
type Quantity int64

// ItemKind represents what sort of thing a record tracks
type ItemKind string

const (
	Product   ItemKind = "product"
	Equipment ItemKind = "equipment"
)

// ItemKinds lists every kind in reporting order
var ItemKinds = []ItemKind{Product, Equipment}

func (k ItemKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds
func (k ItemKind) Valid() bool {
	switch k {
	case Product, Equipment:
		return true
	default:
		return false
	}
}

// ParseItemKind parses a kind name case-insensitively
func ParseItemKind(s string) (ItemKind, error) {
	kind := ItemKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", &ValidationError{
			Field:   "itemKind",
			Message: fmt.Sprintf("invalid item kind: %s (expected product or equipment)", s),
		}
	}
	return kind, nil
}
