package domain

import "time"

// DomainEvent es un registro inmutable de un cambio significativo en un agregado.
type DomainEvent interface {
	EventID() DomainEntityId
	AggregateID() DomainEntityId
	AggregateType() string
	EventType() string
	OccurredOn() time.Time
}

// BaseEvent implementa los metadatos de DomainEvent; se embebe en cada evento concreto.
// Sus campos son privados: una vez creado no cambia.
type BaseEvent struct {
	eventID       DomainEntityId
	aggregateID   DomainEntityId
	aggregateType string
	eventType     string
	occurredOn    time.Time
}

// NewBaseEvent crea los metadatos con un eventId aleatorio y occurredOn = clock.Now().
func NewBaseEvent(aggregateID DomainEntityId, aggregateType, eventType string, clock Clock) BaseEvent {
	return NewBaseEventWithID(NewDomainEntityId(), aggregateID, aggregateType, eventType, clockOrSystem(clock).Now())
}

// NewBaseEventWithID rehidrata un evento con id y fecha conocidos.
func NewBaseEventWithID(eventID, aggregateID DomainEntityId, aggregateType, eventType string, occurredOn time.Time) BaseEvent {
	return BaseEvent{
		eventID:       eventID,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		eventType:     eventType,
		occurredOn:    occurredOn,
	}
}

func (e BaseEvent) EventID() DomainEntityId { return e.eventID }

func (e BaseEvent) AggregateID() DomainEntityId { return e.aggregateID }

func (e BaseEvent) AggregateType() string { return e.aggregateType }

func (e BaseEvent) EventType() string { return e.eventType }

func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }

var _ DomainEvent = BaseEvent{}
