package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// Loader reads records back from the export format
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecords loads records from a CSV file
func (l *Loader) LoadRecords(filename string) ([]entities.InventoryRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadRecords(file)
}

// ReadRecords parses CSV with the export header. A header-only input
// yields an empty slice.
func (l *Loader) ReadRecords(r io.Reader) ([]entities.InventoryRecord, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records CSV: %w", err)
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("records CSV must have a header row")
	}

	if !validateHeader(rows[0], Header) {
		return nil, fmt.Errorf("records CSV header mismatch. Expected: %v, Got: %v", Header, rows[0])
	}

	records := make([]entities.InventoryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(Header) {
			return nil, fmt.Errorf("records CSV row %d: expected %d columns, got %d", i+2, len(Header), len(row))
		}

		record, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("records CSV row %d: %w", i+2, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if !strings.EqualFold(strings.TrimSpace(actual[i]), col) {
			return false
		}
	}

	return true
}

func parseRecord(row []string) (entities.InventoryRecord, error) {
	kind, err := entities.ParseItemKind(row[3])
	if err != nil {
		return entities.InventoryRecord{}, err
	}

	quantity, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid quantity: %s", row[4])
	}

	threshold, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid threshold: %s", row[5])
	}

	unitPrice, err := decimal.NewFromString(row[6])
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid unitPrice: %s", row[6])
	}

	lastUpdated, err := time.Parse(TimestampLayout, row[8])
	if err != nil {
		return entities.InventoryRecord{}, fmt.Errorf("invalid lastUpdated format: %s (expected ISO-8601)", row[8])
	}

	return entities.InventoryRecord{
		ID:          entities.RecordID(row[0]),
		Name:        row[1],
		Category:    row[2],
		ItemKind:    kind,
		Quantity:    entities.Quantity(quantity),
		Threshold:   entities.Quantity(threshold),
		UnitPrice:   unitPrice,
		Supplier:    row[7],
		LastUpdated: lastUpdated.UTC(),
		Notes:       row[9],
	}, nil
}
