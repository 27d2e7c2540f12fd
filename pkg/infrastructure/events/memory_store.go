package events

import (
	"fmt"
	"sync"

	"github.com/vsinha/inventory/pkg/infrastructure/logging"
)

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// InMemoryEventStore keeps every event in memory. Subscribers are notified
// synchronously after the append has been committed, outside the lock, so
// a handler may read the store it is subscribed to.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]subscription
	mutex       sync.RWMutex
	nextSubID   SubscriptionID
	allEvents   []Event
	logger      logging.Logger
}

func NewInMemoryEventStore(logger logging.Logger) *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]subscription),
		allEvents:   make([]Event, 0),
		logger:      logging.OrNoOp(logger),
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	if streamID == "" {
		return fmt.Errorf("stream id cannot be empty")
	}

	s.mutex.Lock()
	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	handlers := append([]subscription(nil), s.subscribers[event.Type()]...)
	s.mutex.Unlock()

	s.notifySubscribers(eventWithVersion, handlers)
	return nil
}

// ReadEvents returns the events of one stream starting at fromVersion (1-based)
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

// ReadAllEvents returns every event starting at fromPosition (0-based)
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) (SubscriptionID, error) {
	if handler == nil {
		return 0, fmt.Errorf("handler cannot be nil")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextSubID++
	sub := subscription{id: s.nextSubID, handler: handler}
	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], sub)
	}

	return sub.id, nil
}

func (s *InMemoryEventStore) Unsubscribe(id SubscriptionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found := false
	for eventType, subs := range s.subscribers {
		kept := make([]subscription, 0, len(subs))
		for _, sub := range subs {
			if sub.id == id {
				found = true
				continue
			}
			kept = append(kept, sub)
		}
		s.subscribers[eventType] = kept
	}

	if !found {
		return fmt.Errorf("subscription not found: %d", id)
	}
	return nil
}

func (s *InMemoryEventStore) notifySubscribers(event Event, subs []subscription) {
	for _, sub := range subs {
		if !sub.handler.CanHandle(event.Type()) {
			continue
		}
		if err := sub.handler.Handle(event); err != nil {
			s.logger.Error("event handler failed", map[string]interface{}{
				"event":  event.Type(),
				"stream": event.StreamID(),
				"error":  err,
			})
		}
	}
}
