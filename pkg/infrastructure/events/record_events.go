package events

import (
	"github.com/vsinha/inventory/pkg/domain/entities"
)

const (
	RecordAddedEvent   = "record.added"
	RecordUpdatedEvent = "record.updated"
	RecordRemovedEvent = "record.removed"
	RecordsLoadedEvent = "records.loaded"
)

// LoadStreamID is the stream bulk loads are appended to
const LoadStreamID = "store"

// RecordEventTypes lists every record event type
var RecordEventTypes = []string{
	RecordAddedEvent,
	RecordUpdatedEvent,
	RecordRemovedEvent,
	RecordsLoadedEvent,
}

type RecordAdded struct {
	Record entities.InventoryRecord `json:"record"`
}

type RecordUpdated struct {
	OldRecord entities.InventoryRecord `json:"old_record"`
	NewRecord entities.InventoryRecord `json:"new_record"`
}

type RecordRemoved struct {
	Record entities.InventoryRecord `json:"record"`
}

type RecordsLoaded struct {
	Count int `json:"count"`
}

func NewRecordAdded(record entities.InventoryRecord) Event {
	return NewEvent(RecordAddedEvent, string(record.ID), RecordAdded{Record: record})
}

func NewRecordUpdated(oldRecord, newRecord entities.InventoryRecord) Event {
	return NewEvent(RecordUpdatedEvent, string(newRecord.ID), RecordUpdated{
		OldRecord: oldRecord,
		NewRecord: newRecord,
	})
}

func NewRecordRemoved(record entities.InventoryRecord) Event {
	return NewEvent(RecordRemovedEvent, string(record.ID), RecordRemoved{Record: record})
}

func NewRecordsLoaded(count int) Event {
	return NewEvent(RecordsLoadedEvent, LoadStreamID, RecordsLoaded{Count: count})
}
