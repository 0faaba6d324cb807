package mocks

import (
	"context"
	"sync"

	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	"github.com/stretchr/testify/mock"
)

// MockPublisher es un EventPublisher de testify para fijar expectativas.
type MockPublisher struct {
	mock.Mock
}

var _ sharedBus.EventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, event sharedDomain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishAll(ctx context.Context, events []sharedDomain.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// DummyPublisher acumula los eventos publicados.
type DummyPublisher struct {
	mu     sync.Mutex
	events []sharedDomain.DomainEvent
}

var _ sharedBus.EventPublisher = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event sharedDomain.DomainEvent) error {
	return p.PublishAll(ctx, []sharedDomain.DomainEvent{event})
}

func (p *DummyPublisher) PublishAll(ctx context.Context, events []sharedDomain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

// Events devuelve una copia de lo publicado.
func (p *DummyPublisher) Events() []sharedDomain.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]sharedDomain.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// EventTypes devuelve los tipos publicados en orden.
func (p *DummyPublisher) EventTypes() []string {
	var types []string
	for _, e := range p.Events() {
		types = append(types, e.EventType())
	}
	return types
}
