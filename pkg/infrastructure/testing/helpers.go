package testing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
)

// BaseTime is the lastUpdated stamp used by every fixture
var BaseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// MustRecord builds a valid record and panics on validation error
func MustRecord(
	id, name, category string,
	kind entities.ItemKind,
	quantity, threshold int64,
	unitPrice, supplier string,
) entities.InventoryRecord {
	record, err := entities.NewInventoryRecord(
		entities.RecordID(id),
		entities.RecordInput{
			Name:      name,
			Category:  category,
			ItemKind:  kind,
			Quantity:  entities.Quantity(quantity),
			Threshold: entities.Quantity(threshold),
			UnitPrice: decimal.RequireFromString(unitPrice),
			Supplier:  supplier,
		},
		BaseTime,
	)
	if err != nil {
		panic(err)
	}
	return *record
}

// BuildShopTestData returns a small mixed store: one record per stock
// status in each of two categories, plus a zero-threshold record.
func BuildShopTestData() []entities.InventoryRecord {
	return []entities.InventoryRecord{
		MustRecord("apple", "Apple", "Fruit", entities.Product, 5, 10, "1.50", "FarmCo"),
		MustRecord("banana", "Banana", "Fruit", entities.Product, 40, 10, "0.25", "FarmCo"),
		MustRecord("cherry", "Cherry", "Fruit", entities.Product, 0, 10, "4.00", "FarmCo"),
		MustRecord("drill", "Drill", "Tools", entities.Equipment, 0, 2, "89.99", "Acme"),
		MustRecord("saw", "Saw", "Tools", entities.Equipment, 2, 2, "24.00", "Acme"),
		MustRecord("wrench", "Wrench", "Tools", entities.Equipment, 9, 2, "12.75", "Acme"),
		MustRecord("lamp", "Desk Lamp", "Office", entities.Equipment, 1, 0, "30.00", "Globex"),
	}
}

// BuildLargeTestData returns n deterministic records spread over
// categories and all three stock statuses
func BuildLargeTestData(n, categories int) []entities.InventoryRecord {
	records := make([]entities.InventoryRecord, n)
	for i := 0; i < n; i++ {
		kind := entities.Product
		if i%3 == 0 {
			kind = entities.Equipment
		}
		records[i] = MustRecord(
			fmt.Sprintf("rec-%06d", i),
			fmt.Sprintf("Item %06d", n-i),
			fmt.Sprintf("Category %02d", i%categories),
			kind,
			int64(i%25),
			int64(i%12),
			fmt.Sprintf("%d.%02d", i%500, i%100),
			fmt.Sprintf("Supplier %d", i%7),
		)
	}
	return records
}

// NewLoadedRepository returns a repository preloaded with records
func NewLoadedRepository(records []entities.InventoryRecord, opts ...memory.Option) *memory.RecordRepository {
	repo := memory.NewRecordRepository(len(records), opts...)
	if err := repo.Load(context.Background(), records); err != nil {
		panic(err)
	}
	return repo
}
