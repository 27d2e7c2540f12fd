package events

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	a := entities.InventoryRecord{ID: "a", Name: "Apple"}
	b := entities.InventoryRecord{ID: "b", Name: "Bolt"}

	require.NoError(t, store.AppendEvent("a", NewRecordAdded(a)))
	require.NoError(t, store.AppendEvent("b", NewRecordAdded(b)))
	require.NoError(t, store.AppendEvent("a", NewRecordRemoved(a)))

	streamA, err := store.ReadEvents("a", 0)
	require.NoError(t, err)
	require.Len(t, streamA, 2)
	assert.Equal(t, RecordAddedEvent, streamA[0].Type())
	assert.Equal(t, 1, streamA[0].Version())
	assert.Equal(t, RecordRemovedEvent, streamA[1].Type())
	assert.Equal(t, 2, streamA[1].Version())

	fromTwo, err := store.ReadEvents("a", 2)
	require.NoError(t, err)
	require.Len(t, fromTwo, 1)

	beyond, err := store.ReadEvents("a", 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	missing, err := store.ReadEvents("zzz", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].StreamID())
}

func TestInMemoryEventStore_EmptyStream(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	err := store.AppendEvent("", NewRecordsLoaded(3))
	assert.Error(t, err)
}

func TestInMemoryEventStore_SubscribersNotifiedSynchronously(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	var seen []string
	id, err := store.Subscribe([]string{RecordAddedEvent}, HandlerFunc(func(e Event) error {
		seen = append(seen, e.StreamID())
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, store.AppendEvent("a", NewRecordAdded(entities.InventoryRecord{ID: "a"})))
	require.NoError(t, store.AppendEvent("a", NewRecordRemoved(entities.InventoryRecord{ID: "a"})))
	assert.Equal(t, []string{"a"}, seen)

	require.NoError(t, store.Unsubscribe(id))
	require.NoError(t, store.AppendEvent("b", NewRecordAdded(entities.InventoryRecord{ID: "b"})))
	assert.Equal(t, []string{"a"}, seen)

	assert.Error(t, store.Unsubscribe(id))
}

func TestInMemoryEventStore_HandlerErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	store := NewInMemoryEventStore(logging.NewStdLogger(&buf, logging.DebugLevel))

	_, err := store.Subscribe(RecordEventTypes, HandlerFunc(func(e Event) error {
		return errors.New("sink offline")
	}))
	require.NoError(t, err)

	require.NoError(t, store.AppendEvent(LoadStreamID, NewRecordsLoaded(2)))
	assert.Contains(t, buf.String(), "event handler failed")
	assert.Contains(t, buf.String(), "error=sink offline")
}

func TestRecordUpdated_Payload(t *testing.T) {
	oldRecord := entities.InventoryRecord{ID: "a", Quantity: 5}
	newRecord := entities.InventoryRecord{ID: "a", Quantity: 0}

	event := NewRecordUpdated(oldRecord, newRecord)
	assert.Equal(t, "a", event.StreamID())

	payload, ok := event.Data().(RecordUpdated)
	require.True(t, ok)
	assert.Equal(t, entities.Quantity(5), payload.OldRecord.Quantity)
	assert.Equal(t, entities.Quantity(0), payload.NewRecord.Quantity)
}
