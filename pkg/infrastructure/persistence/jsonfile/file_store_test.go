package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
)

func sampleRecord() entities.InventoryRecord {
	return entities.InventoryRecord{
		ID:          "rec-1",
		Name:        "Apple",
		Category:    "Fruit",
		ItemKind:    entities.Product,
		Quantity:    5,
		Threshold:   10,
		UnitPrice:   decimal.RequireFromString("1.50"),
		Supplier:    "FarmCo",
		LastUpdated: time.Date(2025, 3, 1, 9, 30, 0, 5, time.UTC),
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "records.json"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "records.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, []entities.InventoryRecord{sampleRecord()}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Apple", loaded[0].Name)
	assert.True(t, loaded[0].UnitPrice.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, loaded[0].LastUpdated.Equal(sampleRecord().LastUpdated))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_JSONShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, []entities.InventoryRecord{sampleRecord()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "rec-1",
		"name": "Apple",
		"category": "Fruit",
		"itemKind": "product",
		"quantity": 5,
		"threshold": 10,
		"unitPrice": "1.5",
		"supplier": "FarmCo",
		"lastUpdated": "2025-03-01T09:30:00.000000005Z",
		"notes": ""
	}]`, string(data))
}

func TestFileStore_EmptySaveWritesArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.json")

	require.NoError(t, NewFileStore(path).Save(ctx, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "failed to parse records file")
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileStore(filepath.Join(t.TempDir(), "records.json")).Save(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore_WithRecordRepository(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "records.json"))

	repo, err := memory.Open(ctx, store)
	require.NoError(t, err)

	id, err := repo.Add(ctx, entities.RecordInput{
		Name:      "Apple",
		Category:  "Fruit",
		ItemKind:  entities.Product,
		Quantity:  5,
		Threshold: 10,
		UnitPrice: decimal.RequireFromString("1.50"),
		Supplier:  "FarmCo",
	})
	require.NoError(t, err)

	reopened, err := memory.Open(ctx, store)
	require.NoError(t, err)

	record, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Apple", record.Name)
	assert.Equal(t, entities.LowStock, record.Status())
}
