package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
	"github.com/vsinha/inventory/pkg/infrastructure/events"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
)

// RecordRepository provides in-memory inventory record storage. Records are
// kept in insertion order with an id index for lookups.
//
// Mutations are serialized behind a write lock and either fully apply or
// leave the repository unchanged, including when the persister rejects the
// new state. Reads take the read lock and always return copies.
type RecordRepository struct {
	mu        sync.RWMutex
	records   []entities.InventoryRecord
	index     map[entities.RecordID]int
	persister repositories.Persister
	events    events.EventStore
	logger    logging.Logger
	now       func() time.Time
	newID     func() entities.RecordID
}

// Option configures a RecordRepository
type Option func(*RecordRepository)

// WithPersister saves the full record set after every mutation
func WithPersister(p repositories.Persister) Option {
	return func(r *RecordRepository) {
		r.persister = p
	}
}

// WithEventStore appends a record event for every successful mutation
func WithEventStore(es events.EventStore) Option {
	return func(r *RecordRepository) {
		r.events = es
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(r *RecordRepository) {
		r.logger = logging.OrNoOp(logger)
	}
}

// WithClock overrides the wall clock used to stamp lastUpdated
func WithClock(now func() time.Time) Option {
	return func(r *RecordRepository) {
		r.now = now
	}
}

// WithIDGenerator overrides uuid-based id generation
func WithIDGenerator(newID func() entities.RecordID) Option {
	return func(r *RecordRepository) {
		r.newID = newID
	}
}

// NewRecordRepository creates a new, empty in-memory record repository
func NewRecordRepository(expectedRecords int, opts ...Option) *RecordRepository {
	r := &RecordRepository{
		records: make([]entities.InventoryRecord, 0, expectedRecords),
		index:   make(map[entities.RecordID]int, expectedRecords),
		logger:  &logging.NoOpLogger{},
		now:     time.Now,
		newID: func() entities.RecordID {
			return entities.RecordID(uuid.NewString())
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates a repository seeded from the persister's current state. The
// loaded state is not written back.
func Open(ctx context.Context, persister repositories.Persister, opts ...Option) (*RecordRepository, error) {
	records, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	r := NewRecordRepository(len(records), append(opts, WithPersister(persister))...)
	if err := validateBulk(records); err != nil {
		return nil, fmt.Errorf("invalid persisted records: %w", err)
	}

	r.mu.Lock()
	r.replaceLocked(records)
	r.mu.Unlock()

	r.logger.Info("records opened", map[string]interface{}{"count": len(records)})
	r.appendEvent(events.NewRecordsLoaded(len(records)))
	return r, nil
}

// Verify interface compliance
var _ repositories.RecordRepository = (*RecordRepository)(nil)

// Add validates input, assigns a fresh id and timestamp, and appends the record
func (r *RecordRepository) Add(ctx context.Context, input entities.RecordInput) (entities.RecordID, error) {
	var id entities.RecordID
	err := r.mutate(func() (events.Event, error) {
		id = r.newID()
		for {
			if _, exists := r.index[id]; !exists && id != "" {
				break
			}
			id = r.newID()
		}

		record, err := entities.NewInventoryRecord(id, input, r.stamp(time.Time{}))
		if err != nil {
			return nil, err
		}

		previous := r.records
		r.index[id] = len(r.records)
		r.records = append(r.records, *record)

		if err := r.persistLocked(ctx); err != nil {
			r.records = previous
			delete(r.index, id)
			return nil, err
		}

		r.logger.Debug("record added", map[string]interface{}{"id": id, "name": record.Name})
		return events.NewRecordAdded(*record), nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update merges patch into the record and re-stamps lastUpdated
func (r *RecordRepository) Update(ctx context.Context, id entities.RecordID, patch entities.RecordPatch) error {
	return r.mutate(func() (events.Event, error) {
		idx, exists := r.index[id]
		if !exists {
			return nil, &entities.NotFoundError{ID: id}
		}

		old := r.records[idx]
		updated := patch.Apply(old)
		if err := updated.Validate(); err != nil {
			return nil, err
		}
		updated.LastUpdated = r.stamp(old.LastUpdated)

		r.records[idx] = updated
		if err := r.persistLocked(ctx); err != nil {
			r.records[idx] = old
			return nil, err
		}

		r.logger.Debug("record updated", map[string]interface{}{"id": id})
		return events.NewRecordUpdated(old, updated), nil
	})
}

// Remove permanently deletes the record
func (r *RecordRepository) Remove(ctx context.Context, id entities.RecordID) error {
	return r.mutate(func() (events.Event, error) {
		idx, exists := r.index[id]
		if !exists {
			return nil, &entities.NotFoundError{ID: id}
		}

		removed := r.records[idx]
		previous := r.records

		remaining := make([]entities.InventoryRecord, 0, len(previous)-1)
		remaining = append(remaining, previous[:idx]...)
		remaining = append(remaining, previous[idx+1:]...)
		r.replaceLocked(remaining)

		if err := r.persistLocked(ctx); err != nil {
			r.replaceLocked(previous)
			return nil, err
		}

		r.logger.Debug("record removed", map[string]interface{}{"id": id})
		return events.NewRecordRemoved(removed), nil
	})
}

// Load replaces the repository contents with records, in the given order.
// Every record must be valid and carry a unique, non-empty id.
func (r *RecordRepository) Load(ctx context.Context, records []entities.InventoryRecord) error {
	if err := validateBulk(records); err != nil {
		return err
	}

	return r.mutate(func() (events.Event, error) {
		previous := r.records
		r.replaceLocked(records)

		if err := r.persistLocked(ctx); err != nil {
			r.replaceLocked(previous)
			return nil, err
		}

		r.logger.Info("records loaded", map[string]interface{}{"count": len(records)})
		return events.NewRecordsLoaded(len(records)), nil
	})
}

// mutate runs fn under the write lock. The resulting event is appended
// after the lock is released so subscribers can read the repository.
func (r *RecordRepository) mutate(fn func() (events.Event, error)) error {
	r.mu.Lock()
	event, err := fn()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.appendEvent(event)
	return nil
}

// Get returns a copy of a single record
func (r *RecordRepository) Get(id entities.RecordID) (entities.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, exists := r.index[id]
	if !exists {
		return entities.InventoryRecord{}, &entities.NotFoundError{ID: id}
	}
	return r.records[idx], nil
}

// All returns a snapshot of every record in insertion order
func (r *RecordRepository) All() []entities.InventoryRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked()
}

// Categories returns the distinct categories in first-encountered order
func (r *RecordRepository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	categories := []string{}
	for _, record := range r.records {
		if !seen[record.Category] {
			seen[record.Category] = true
			categories = append(categories, record.Category)
		}
	}
	return categories
}

func (r *RecordRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// stamp returns the current time, nudged forward so it is strictly after prev
func (r *RecordRepository) stamp(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (r *RecordRepository) snapshotLocked() []entities.InventoryRecord {
	snapshot := make([]entities.InventoryRecord, len(r.records))
	copy(snapshot, r.records)
	return snapshot
}

func (r *RecordRepository) replaceLocked(records []entities.InventoryRecord) {
	r.records = make([]entities.InventoryRecord, len(records))
	copy(r.records, records)

	r.index = make(map[entities.RecordID]int, len(records))
	for i, record := range r.records {
		r.index[record.ID] = i
	}
}

func (r *RecordRepository) persistLocked(ctx context.Context) error {
	if r.persister == nil {
		return nil
	}
	if err := r.persister.Save(ctx, r.snapshotLocked()); err != nil {
		r.logger.Error("failed to persist records", map[string]interface{}{"error": err})
		return fmt.Errorf("failed to persist records: %w", err)
	}
	return nil
}

// appendEvent records a mutation in the event log. The log is auxiliary, so
// a failure is logged rather than undoing the mutation.
func (r *RecordRepository) appendEvent(event events.Event) {
	if r.events == nil {
		return
	}
	if err := r.events.AppendEvent(event.StreamID(), event); err != nil {
		r.logger.Warn("failed to append record event", map[string]interface{}{
			"event": event.Type(),
			"error": err,
		})
	}
}

func validateBulk(records []entities.InventoryRecord) error {
	seen := make(map[entities.RecordID]bool, len(records))
	for i, record := range records {
		if record.ID == "" {
			return &entities.ValidationError{
				Field:   "id",
				Message: fmt.Sprintf("record %d: id cannot be empty", i),
			}
		}
		if seen[record.ID] {
			return &entities.ValidationError{
				Field:   "id",
				Message: fmt.Sprintf("record %d: duplicate id %s", i, record.ID),
			}
		}
		seen[record.ID] = true

		if err := record.Validate(); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, record.ID, err)
		}
	}
	return nil
}
