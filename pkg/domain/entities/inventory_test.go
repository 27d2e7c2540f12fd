package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RecordInput {
	return RecordInput{
		Name:      "Apple",
		Category:  "Fruit",
		ItemKind:  Product,
		Quantity:  5,
		Threshold: 10,
		UnitPrice: decimal.RequireFromString("1.50"),
		Supplier:  "FarmCo",
	}
}

func TestInventoryRecord_Validation(t *testing.T) {
	stamp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	record, err := NewInventoryRecord("rec-1", validInput(), stamp)
	require.NoError(t, err)
	assert.Equal(t, RecordID("rec-1"), record.ID)
	assert.Equal(t, Quantity(5), record.Quantity)
	assert.True(t, record.LastUpdated.Equal(stamp))

	testCases := []struct {
		name        string
		mutate      func(in *RecordInput)
		expectField string
		expectError string
	}{
		{"empty name", func(in *RecordInput) { in.Name = "" }, "name", "name cannot be empty"},
		{"blank category", func(in *RecordInput) { in.Category = "   " }, "category", "category cannot be empty"},
		{"empty supplier", func(in *RecordInput) { in.Supplier = "" }, "supplier", "supplier cannot be empty"},
		{"unknown kind", func(in *RecordInput) { in.ItemKind = "service" }, "itemKind", `invalid item kind: "service" (expected product or equipment)`},
		{"negative quantity", func(in *RecordInput) { in.Quantity = -5 }, "quantity", "quantity cannot be negative, got -5"},
		{"negative threshold", func(in *RecordInput) { in.Threshold = -1 }, "threshold", "threshold cannot be negative, got -1"},
		{"negative price", func(in *RecordInput) { in.UnitPrice = decimal.RequireFromString("-0.01") }, "unitPrice", "unit price cannot be negative, got -0.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := NewInventoryRecord("rec-1", in, stamp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.expectField, verr.Field)
			assert.Equal(t, tc.expectError, err.Error())
		})
	}
}

func TestInventoryRecord_EmptyID(t *testing.T) {
	_, err := NewInventoryRecord("", validInput(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInventoryRecord_Value(t *testing.T) {
	record, err := NewInventoryRecord("rec-1", validInput(), time.Now())
	require.NoError(t, err)

	assert.True(t, record.Value().Equal(decimal.RequireFromString("7.5")))
}

func TestRecordPatch_Apply(t *testing.T) {
	stamp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	original, err := NewInventoryRecord("rec-1", validInput(), stamp)
	require.NoError(t, err)

	qty := Quantity(0)
	notes := "recount pending"
	patched := RecordPatch{Quantity: &qty, Notes: &notes}.Apply(*original)

	assert.Equal(t, Quantity(0), patched.Quantity)
	assert.Equal(t, "recount pending", patched.Notes)
	assert.Equal(t, original.Name, patched.Name)
	assert.Equal(t, original.ID, patched.ID)
	assert.True(t, patched.LastUpdated.Equal(stamp))

	// the source record is a value and must be untouched
	assert.Equal(t, Quantity(5), original.Quantity)
	assert.Empty(t, original.Notes)
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{ID: "missing"})

	assert.Equal(t, "record not found: missing", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
}
