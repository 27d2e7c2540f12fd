package repositories

import (
	"context"

	"github.com/vsinha/inventory/pkg/domain/entities"
)

// Persister loads the initial record set and saves the full set after
// every mutation. Records are passed in store order.
type Persister interface {
	Load(ctx context.Context) ([]entities.InventoryRecord, error)
	Save(ctx context.Context, records []entities.InventoryRecord) error
}
