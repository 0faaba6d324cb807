package events

import (
	"encoding/json"
	"time"

	"github.com/davicafu/sharedkernel/shared/domain"
)

// IntegrationEvent es la forma en la que un evento de dominio sale del proceso.
type IntegrationEvent struct {
	ID            string          `json:"eventId"`
	Type          string          `json:"type"`
	AggregateID   string          `json:"aggregateId"`
	AggregateType string          `json:"aggregateType"`
	Timestamp     time.Time       `json:"timestamp"`
	Data          json.RawMessage `json:"data"` // contenido específico del evento
}

// FromDomainEvent serializa el evento completo como Data y copia sus metadatos.
func FromDomainEvent(evt domain.DomainEvent) (IntegrationEvent, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		ID:            evt.EventID().String(),
		Type:          evt.EventType(),
		AggregateID:   evt.AggregateID().String(),
		AggregateType: evt.AggregateType(),
		Timestamp:     evt.OccurredOn().UTC(),
		Data:          data,
	}, nil
}

// PartitionKey agrupa por agregado para conservar el orden por entidad.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}
