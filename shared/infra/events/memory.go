package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/davicafu/sharedkernel/shared/domain"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	sharedEvents "github.com/davicafu/sharedkernel/shared/events"
)

// InMemoryEventBus reparte los eventos serializados a los suscriptores de un único topic.
// Un suscriptor lento pierde mensajes en lugar de bloquear al publicador.
type InMemoryEventBus struct {
	subscribers []chan []byte
	mu          sync.RWMutex
	topic       string
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{topic: topic}
}

func (b *InMemoryEventBus) Topic() string { return b.topic }

// Publish envía el evento a todos los suscriptores de este bus.
func (b *InMemoryEventBus) Publish(ctx context.Context, event domain.DomainEvent) error {
	ie, err := sharedEvents.FromDomainEvent(event)
	if err != nil {
		return sharedBus.NewPublishingError("failed to serialize event", err)
	}
	payload, err := json.Marshal(ie)
	if err != nil {
		return sharedBus.NewPublishingError("failed to serialize event", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- payload:
		default:
		}
	}
	return nil
}

func (b *InMemoryEventBus) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, evt := range events {
		if err := b.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registra un nuevo oyente con el buffer indicado.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan []byte, bufferSize)
	b.subscribers = append(b.subscribers, sub)
	return sub
}
