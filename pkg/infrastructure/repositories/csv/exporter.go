package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// TimestampLayout is the ISO-8601 layout used for lastUpdated
const TimestampLayout = time.RFC3339Nano

// Header is the fixed export column order
var Header = []string{
	"id",
	"name",
	"category",
	"itemKind",
	"quantity",
	"threshold",
	"unitPrice",
	"supplier",
	"lastUpdated",
	"notes",
}

// Exporter serializes record views as CSV
type Exporter struct{}

// NewExporter creates a new CSV exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Write writes the header and one row per record, in the given order
func (e *Exporter) Write(w io.Writer, records []entities.InventoryRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, record := range records {
		if err := writer.Write(formatRecord(record)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+2, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Serialize renders records as CSV text
func (e *Exporter) Serialize(records []entities.InventoryRecord) (string, error) {
	var b strings.Builder
	if err := e.Write(&b, records); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatRecord(r entities.InventoryRecord) []string {
	return []string{
		string(r.ID),
		r.Name,
		r.Category,
		r.ItemKind.String(),
		strconv.FormatInt(int64(r.Quantity), 10),
		strconv.FormatInt(int64(r.Threshold), 10),
		r.UnitPrice.StringFixed(2),
		r.Supplier,
		r.LastUpdated.UTC().Format(TimestampLayout),
		r.Notes,
	}
}
