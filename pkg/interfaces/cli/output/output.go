package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vsinha/inventory/pkg/application/dto"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// Generate writes report to w in the configured format
func Generate(w io.Writer, report *dto.InventoryReport, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(w, report, config)
	case "json":
		return generateJSONOutput(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, report *dto.InventoryReport, config Config) error {
	var b strings.Builder

	b.WriteString("📊 Inventory Summary\n")
	b.WriteString("====================\n\n")
	fmt.Fprintf(&b, "Total Items: %d\n", report.Summary.TotalItems)
	fmt.Fprintf(&b, "Total Quantity: %d\n", report.Summary.TotalQuantity)
	fmt.Fprintf(&b, "Low Stock: %d\n", report.Summary.LowStockCount)
	fmt.Fprintf(&b, "Out of Stock: %d\n", report.Summary.OutOfStockCount)
	fmt.Fprintf(&b, "Total Value: %s\n\n", report.Summary.FormattedTotalValue())

	if len(report.Records) > 0 {
		fmt.Fprintf(&b, "📋 Records (%d):\n", len(report.Records))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Name\tCategory\tKind\tQty\tThreshold\tUnit Price\tStatus\tSupplier")
		fmt.Fprintln(tw, "----\t--------\t----\t---\t---------\t----------\t------\t--------")
		for _, r := range report.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				r.Name,
				r.Category,
				r.ItemKind,
				r.Quantity,
				r.Threshold,
				r.UnitPrice.StringFixed(2),
				r.Status,
				r.Supplier)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to render records: %w", err)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No records match the current view.\n\n")
	}

	if config.Verbose {
		b.WriteString("🆔 Record IDs:\n")
		for _, r := range report.Records {
			fmt.Fprintf(&b, "  %s  %s  updated %s\n",
				r.ID, r.Name, r.LastUpdated.Format(csv.TimestampLayout))
		}
		b.WriteString("\n")
	}

	if len(report.Groups) > 0 {
		fmt.Fprintf(&b, "📈 By %s:\n", report.Grouping)
		for _, row := range report.Groups {
			fmt.Fprintf(&b, "  %-20s %d\n", row.Label, row.Value)
		}
		b.WriteString("\n")
	}

	if len(report.CategoryValue) > 0 {
		b.WriteString("💰 Value by category:\n")
		for _, row := range report.CategoryValue {
			fmt.Fprintf(&b, "  %-20s %s\n", row.Label, row.Value.StringFixed(2))
		}
		b.WriteString("\n")
	}

	if len(report.Reorder) > 0 {
		b.WriteString("⚠️  Reorder:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Name\tStatus\tQty\tThreshold\tShortfall\tSupplier")
		for _, line := range report.Reorder {
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%d\t%s\n",
				line.Record.Name,
				line.Status,
				line.Record.Quantity,
				line.Record.Threshold,
				line.Shortfall,
				line.Record.Supplier)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to render reorder list: %w", err)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// generateJSONOutput creates indented JSON output
func generateJSONOutput(w io.Writer, report *dto.InventoryReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
