package repositories

import (
	"context"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// RecordRepository provides access to the authoritative set of inventory records
type RecordRepository interface {
	Add(ctx context.Context, input entities.RecordInput) (entities.RecordID, error)
	Update(ctx context.Context, id entities.RecordID, patch entities.RecordPatch) error
	Remove(ctx context.Context, id entities.RecordID) error
	Load(ctx context.Context, records []entities.InventoryRecord) error
	Get(id entities.RecordID) (entities.InventoryRecord, error)
	All() []entities.InventoryRecord
	Categories() []string
	Len() int
}
