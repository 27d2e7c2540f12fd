package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/vsinha/inventory/pkg/application/services"
	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/application/services/view"
	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/events"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	logger := logging.NewStdLogger(os.Stderr, logging.InfoLevel)

	// Record every mutation
	eventStore := events.NewInMemoryEventStore(logger)
	repo := memory.NewRecordRepository(4,
		memory.WithLogger(logger),
		memory.WithEventStore(eventStore),
	)
	svc := services.NewInventoryService(repo, view.NewEngine(language.English), logger)

	fmt.Println("🍎 Stocking the shop...")
	appleID, err := svc.Add(ctx, entities.RecordInput{
		Name:      "Apple",
		Category:  "Fruit",
		ItemKind:  entities.Product,
		Quantity:  5,
		Threshold: 10,
		UnitPrice: decimal.RequireFromString("1.50"),
		Supplier:  "FarmCo",
	})
	if err != nil {
		fmt.Printf("❌ Add failed: %v\n", err)
		return
	}

	record, _ := svc.Get(appleID)
	summary := svc.Summary()
	fmt.Printf("  %s is %s\n", record.Name, record.Status())
	fmt.Printf("  Items: %d | Quantity: %d | Low: %d | Out: %d | Value: %s\n",
		summary.TotalItems,
		summary.TotalQuantity,
		summary.LowStockCount,
		summary.OutOfStockCount,
		summary.FormattedTotalValue())
	fmt.Println()

	// Sell the last apple
	fmt.Println("🛒 Selling out...")
	zero := entities.Quantity(0)
	if err := svc.Update(ctx, appleID, entities.RecordPatch{Quantity: &zero}); err != nil {
		fmt.Printf("❌ Update failed: %v\n", err)
		return
	}

	rows, _ := svc.Aggregate(report.ByStatus)
	for _, row := range rows {
		fmt.Printf("  %-12s %d\n", row.Label, row.Value)
	}
	fmt.Println()

	// Removing an unknown id is reported and changes nothing
	if err := svc.Remove(ctx, "no-such-record"); err != nil {
		fmt.Printf("⚠️  %v (records still: %d)\n", err, len(svc.Records()))
	}
	fmt.Println()

	fmt.Println("📄 CSV export:")
	if err := svc.ExportCSV(os.Stdout, svc.Records()); err != nil {
		fmt.Printf("❌ Export failed: %v\n", err)
		return
	}
	fmt.Println()

	history, _ := eventStore.ReadEvents(string(appleID), 0)
	fmt.Printf("🕘 %d events recorded for %s\n", len(history), record.Name)
}
