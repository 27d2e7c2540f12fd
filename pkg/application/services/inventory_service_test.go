package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/application/services/view"
	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/events"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/inventory/pkg/infrastructure/testing"
)

func newTestService(t *testing.T, opts ...memory.Option) *InventoryService {
	t.Helper()
	repo := memory.NewRecordRepository(8, opts...)
	svc := NewInventoryService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func appleInput() entities.RecordInput {
	return entities.RecordInput{
		Name:      "Apple",
		Category:  "Fruit",
		ItemKind:  entities.Product,
		Quantity:  5,
		Threshold: 10,
		UnitPrice: decimal.RequireFromString("1.50"),
		Supplier:  "FarmCo",
	}
}

func statusRows(t *testing.T, svc *InventoryService) map[string]int64 {
	t.Helper()
	rows, err := svc.Aggregate(report.ByStatus)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Value
	}
	return out
}

func TestInventoryService_AppleLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id, err := svc.Add(ctx, appleInput())
	require.NoError(t, err)

	records := svc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, entities.LowStock, entities.Classify(records[0]))

	summary := svc.Summary()
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, entities.Quantity(5), summary.TotalQuantity)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 0, summary.OutOfStockCount)
	assert.Equal(t, "7.50", summary.FormattedTotalValue())

	zero := entities.Quantity(0)
	require.NoError(t, svc.Update(ctx, id, entities.RecordPatch{Quantity: &zero}))

	record, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, entities.OutOfStock, entities.Classify(record))
	assert.Equal(t, map[string]int64{"OutOfStock": 1, "LowStock": 0, "InStock": 0}, statusRows(t, svc))

	err = svc.Remove(ctx, "does-not-exist")
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Len(t, svc.Records(), 1)

	require.NoError(t, svc.Remove(ctx, id))
	assert.Empty(t, svc.Records())
}

func TestInventoryService_StatusRowsSumToTotalItems(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	inputs := []struct {
		qty, threshold int64
	}{
		{0, 5}, {3, 5}, {5, 5}, {6, 5}, {1, 0},
	}
	for _, in := range inputs {
		input := appleInput()
		input.Quantity = entities.Quantity(in.qty)
		input.Threshold = entities.Quantity(in.threshold)
		_, err := svc.Add(ctx, input)
		require.NoError(t, err)
	}

	var sum int64
	for _, v := range statusRows(t, svc) {
		sum += v
	}
	assert.Equal(t, int64(svc.Summary().TotalItems), sum)
}

func TestInventoryService_Report(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, appleInput())
	require.NoError(t, err)

	drill := appleInput()
	drill.Name = "Drill"
	drill.Category = "Tools"
	drill.ItemKind = entities.Equipment
	drill.Quantity = 12
	drill.Threshold = 2
	drill.UnitPrice = decimal.RequireFromString("89.99")
	drill.Supplier = "Acme"
	_, err = svc.Add(ctx, drill)
	require.NoError(t, err)

	rep, err := svc.Report(ViewRequest{
		Filter:   view.Filter{Kind: entities.Equipment},
		Sort:     view.Sort{Field: view.SortByName},
		Grouping: report.ByItemKind,
	})
	require.NoError(t, err)

	require.Len(t, rep.Records, 1)
	assert.Equal(t, "Drill", rep.Records[0].Name)
	assert.Equal(t, entities.InStock, rep.Records[0].Status)
	assert.True(t, rep.Records[0].Value.Equal(decimal.RequireFromString("1079.88")))

	// groups follow the view, summary covers the whole store
	assert.Equal(t, []report.Row{{Label: "product", Value: 0}, {Label: "equipment", Value: 1}}, rep.Groups)
	assert.Equal(t, 2, rep.Summary.TotalItems)
	assert.Equal(t, "1087.38", rep.Summary.FormattedTotalValue())
	assert.Equal(t, []string{"Fruit", "Tools"}, rep.Categories)
	require.Len(t, rep.Reorder, 1)
	assert.Equal(t, "Apple", rep.Reorder[0].Record.Name)
	assert.Equal(t, entities.Quantity(6), rep.Reorder[0].Shortfall)
	require.Len(t, rep.CategoryValue, 2)
	assert.True(t, rep.CategoryValue[0].Value.Equal(decimal.RequireFromString("7.5")))

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"InStock"`)
	assert.Contains(t, string(data), `"grouping":"itemKind"`)
}

func TestInventoryService_ReportDefaultsToCategory(t *testing.T) {
	svc := newTestService(t)

	rep, err := svc.Report(ViewRequest{})
	require.NoError(t, err)
	assert.Equal(t, report.ByCategory, rep.Grouping)
	assert.Empty(t, rep.Records)
	assert.Empty(t, rep.Groups)
}

func TestInventoryService_ReportRejectsUnknownDimension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Report(ViewRequest{Grouping: "supplier"})
	assert.Error(t, err)
}

func TestInventoryService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newTestService(t)

	_, err := source.Add(ctx, appleInput())
	require.NoError(t, err)
	tricky := appleInput()
	tricky.Name = `Bolt, "hex"`
	tricky.Notes = "line one\nline two"
	tricky.UnitPrice = decimal.RequireFromString("0.125")
	_, err = source.Add(ctx, tricky)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, source.ExportCSV(&buf, source.Records()))

	serialized, err := source.SerializeCSV(source.Records())
	require.NoError(t, err)
	assert.Equal(t, buf.String(), serialized)

	store := events.NewInMemoryEventStore(nil)
	target := newTestService(t, memory.WithEventStore(store))
	count, err := target.ImportCSV(ctx, strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	original := source.Records()
	imported := target.Records()
	require.Len(t, imported, 2)
	for i := range original {
		assert.Equal(t, original[i].ID, imported[i].ID)
		assert.Equal(t, original[i].Name, imported[i].Name)
		assert.Equal(t, original[i].Notes, imported[i].Notes)
		assert.True(t, original[i].LastUpdated.Equal(imported[i].LastUpdated))
		assert.True(t, original[i].UnitPrice.Round(2).Equal(imported[i].UnitPrice))
	}

	loaded, err := store.ReadEvents(events.LoadStreamID, 0)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestInventoryService_ImportFailureKeepsStore(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, appleInput())
	require.NoError(t, err)

	_, err = svc.ImportCSV(ctx, strings.NewReader("not,a,valid,header\n"))
	require.Error(t, err)
	assert.Len(t, svc.Records(), 1)
}

func TestInventoryService_ShopReport(t *testing.T) {
	repo := testhelpers.NewLoadedRepository(testhelpers.BuildShopTestData())
	svc := NewInventoryService(repo, nil, nil)

	rep, err := svc.Report(ViewRequest{
		Filter:   view.Filter{Category: "Tools"},
		Sort:     view.Sort{Field: view.SortByUnitPrice, Order: view.Descending},
		Grouping: report.ByStatus,
	})
	require.NoError(t, err)

	names := make([]string, len(rep.Records))
	for i, r := range rep.Records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Drill", "Saw", "Wrench"}, names)
	assert.Equal(t, []report.Row{
		{Label: "OutOfStock", Value: 1},
		{Label: "LowStock", Value: 1},
		{Label: "InStock", Value: 1},
	}, rep.Groups)

	// reorder covers the whole store, out of stock first
	reorder := make([]string, len(rep.Reorder))
	for i, line := range rep.Reorder {
		reorder[i] = string(line.Record.ID)
	}
	assert.Equal(t, []string{"cherry", "drill", "apple", "saw"}, reorder)
	assert.Equal(t, 7, rep.Summary.TotalItems)
	assert.Equal(t, 2, rep.Summary.OutOfStockCount)
	assert.Equal(t, 2, rep.Summary.LowStockCount)
}
