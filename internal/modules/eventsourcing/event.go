package eventsourcing

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

type EventType = string

type DomainEvent interface {
	EventType() EventType
}

// Envelope is a recorded domain event together with its position in the
// aggregate's stream.
type Envelope struct {
	AggregateID uuid.UUID
	Sequence    int
	Event       DomainEvent
	RecordedAt  time.Time
}

// EventRegistry knows how to turn stored payloads back into domain events.
type EventRegistry struct {
	mu    sync.RWMutex
	types map[EventType]reflect.Type
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{types: make(map[EventType]reflect.Type)}
}

// Register makes events of the same concrete type as event decodable.
func (r *EventRegistry) Register(events ...DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range events {
		typ := reflect.TypeOf(event)
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		r.types[event.EventType()] = typ
	}
}

func (r *EventRegistry) Encode(event DomainEvent) ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(event)
}

func (r *EventRegistry) Decode(eventType EventType, payload []byte) (DomainEvent, error) {
	r.mu.RLock()
	typ, found := r.types[eventType]
	r.mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("unknown event type '%s'", eventType)
	}

	target := reflect.New(typ)
	if err := jsoniter.ConfigFastest.Unmarshal(payload, target.Interface()); err != nil {
		return nil, fmt.Errorf("failed to decode event '%s': %w", eventType, err)
	}

	event, ok := target.Elem().Interface().(DomainEvent)
	if !ok {
		return nil, fmt.Errorf("type registered for '%s' is not a domain event", eventType)
	}

	return event, nil
}
