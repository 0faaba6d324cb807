package bus

import (
	"context"
	"fmt"

	"github.com/davicafu/sharedkernel/shared/domain"
)

// Keyer lo implementan los eventos que fijan su clave de partición.
type Keyer interface {
	PartitionKey() string
}

// EventPublisher entrega eventos de dominio fuera del proceso.
// La semántica de topic/nombre y formato del payload la deciden los adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
	PublishAll(ctx context.Context, events []domain.DomainEvent) error
}

// PublishingError indica que un evento no pudo serializarse o entregarse.
type PublishingError struct {
	Message string
	Err     error
}

func NewPublishingError(msg string, err error) *PublishingError {
	return &PublishingError{Message: msg, Err: err}
}

func (e *PublishingError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PublishingError) Unwrap() error { return e.Err }

func (e *PublishingError) ErrorType() string { return "PublishingError" }

// Dispatch publica los eventos pendientes del agregado y vacía su buffer.
// Si la publicación falla los eventos siguen pendientes.
func Dispatch(ctx context.Context, publisher EventPublisher, source domain.EventSource) error {
	if publisher == nil || source == nil || !source.HasPendingEvents() {
		return nil
	}
	if err := publisher.PublishAll(ctx, source.DomainEvents()); err != nil {
		return err
	}
	source.ClearDomainEvents()
	return nil
}
