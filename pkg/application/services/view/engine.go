// Package view produces filtered, sorted projections of the record store.
// Views are computed on demand and never mutate their input.
package view

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// Engine applies filters and sorts to record snapshots. String fields are
// compared with a collator for the configured locale.
type Engine struct {
	locale language.Tag
}

// NewEngine creates an engine that collates strings for locale
func NewEngine(locale language.Tag) *Engine {
	return &Engine{locale: locale}
}

// NewEngineForLocale parses a BCP 47 tag such as "en-US" or "sv"; an
// empty string selects the root collation.
func NewEngineForLocale(tag string) (*Engine, error) {
	if tag == "" {
		return NewEngine(language.Und), nil
	}
	locale, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	return NewEngine(locale), nil
}

func (e *Engine) Locale() language.Tag {
	return e.locale
}

// Apply returns the records matching filter, ordered by sorting. The sort is
// stable, so records equal under the sort key keep their input order in
// both directions.
func (e *Engine) Apply(records []entities.InventoryRecord, filter Filter, sorting Sort) []entities.InventoryRecord {
	result := make([]entities.InventoryRecord, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			result = append(result, record)
		}
	}

	if sorting.Field == SortNone {
		return result
	}

	compare := e.comparator(sorting.Field)
	sort.SliceStable(result, func(i, j int) bool {
		c := compare(result[i], result[j])
		if sorting.Order == Descending {
			return c > 0
		}
		return c < 0
	})
	return result
}

// comparator returns a three-way comparison for field. Collators are not
// safe for concurrent use, so a fresh one is built per call.
func (e *Engine) comparator(field SortField) func(a, b entities.InventoryRecord) int {
	switch field {
	case SortByName:
		col := collate.New(e.locale)
		return func(a, b entities.InventoryRecord) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByCategory:
		col := collate.New(e.locale)
		return func(a, b entities.InventoryRecord) int {
			return col.CompareString(a.Category, b.Category)
		}
	case SortByQuantity:
		return func(a, b entities.InventoryRecord) int {
			switch {
			case a.Quantity < b.Quantity:
				return -1
			case a.Quantity > b.Quantity:
				return 1
			default:
				return 0
			}
		}
	case SortByUnitPrice:
		return func(a, b entities.InventoryRecord) int {
			return a.UnitPrice.Cmp(b.UnitPrice)
		}
	default:
		return func(a, b entities.InventoryRecord) int { return 0 }
	}
}
