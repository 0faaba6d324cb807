package domain

// EventSource es el punto de entrega de eventos hacia un publicador externo.
type EventSource interface {
	DomainEvents() []DomainEvent
	HasPendingEvents() bool
	ClearDomainEvents()
}

// AggregateRoot extiende Model con un buffer ordenado de eventos pendientes.
// No es seguro para uso concurrente: un solo escritor por instancia.
type AggregateRoot struct {
	Model
	events []DomainEvent
}

// NewAggregateRoot crea un agregado nuevo con el buffer vacío.
func NewAggregateRoot(id DomainEntityId, clock Clock) (AggregateRoot, error) {
	m, err := NewModel(id, clock)
	if err != nil {
		return AggregateRoot{}, err
	}
	return AggregateRoot{Model: m}, nil
}

// RestoreAggregateRoot envuelve un Model rehidratado.
func RestoreAggregateRoot(m Model) AggregateRoot {
	return AggregateRoot{Model: m}
}

// AddDomainEvent añade el evento salvo que ya exista uno con el mismo eventId.
func (a *AggregateRoot) AddDomainEvent(event DomainEvent) {
	if event == nil {
		return
	}
	for _, e := range a.events {
		if e.EventID() == event.EventID() {
			return
		}
	}
	a.events = append(a.events, event)
}

// RemoveDomainEvent quita el evento con el mismo eventId, si existe.
func (a *AggregateRoot) RemoveDomainEvent(event DomainEvent) {
	if event == nil {
		return
	}
	for i, e := range a.events {
		if e.EventID() == event.EventID() {
			a.events = append(a.events[:i:i], a.events[i+1:]...)
			return
		}
	}
}

// DomainEvents devuelve una copia de los eventos pendientes, nunca el slice interno.
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

func (a *AggregateRoot) HasPendingEvents() bool { return len(a.events) > 0 }

// ClearDomainEvents vacía el buffer. Lo llama quien publica, nunca el propio agregado.
func (a *AggregateRoot) ClearDomainEvents() {
	a.events = nil
}

var _ EventSource = (*AggregateRoot)(nil)
