package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/davicafu/sharedkernel/shared/domain"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	sharedEvents "github.com/davicafu/sharedkernel/shared/events"
	"github.com/davicafu/sharedkernel/shared/utils"
)

// MessageWriter es lo que necesitamos de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer   MessageWriter
	log      *zap.Logger
	attempts int
	delay    time.Duration
}

var _ sharedBus.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(writer MessageWriter, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaPublisher{writer: writer, log: log, attempts: 3, delay: 200 * time.Millisecond}
}

// WithRetry ajusta los reintentos de escritura.
func (p *KafkaPublisher) WithRetry(attempts int, delay time.Duration) *KafkaPublisher {
	if attempts < 1 {
		attempts = 1
	}
	p.attempts = attempts
	p.delay = delay
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	return p.PublishAll(ctx, []domain.DomainEvent{event})
}

// PublishAll escribe el lote en una sola llamada; la clave de cada mensaje es el id del agregado.
func (p *KafkaPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		ie, err := sharedEvents.FromDomainEvent(evt)
		if err != nil {
			return sharedBus.NewPublishingError("failed to serialize event", err)
		}
		data, err := json.Marshal(ie)
		if err != nil {
			return sharedBus.NewPublishingError("failed to serialize event", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ie.PartitionKey()),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(ie.Type)},
			},
		})
	}

	err := utils.Retry(ctx, p.attempts, p.delay, func() error {
		return p.writer.WriteMessages(ctx, msgs...)
	})
	if err != nil {
		p.log.Error("Error publishing to Kafka", zap.Int("events", len(msgs)), zap.Error(err))
		return sharedBus.NewPublishingError("failed to publish events to Kafka", err)
	}

	p.log.Debug("Events published successfully", zap.Int("events", len(msgs)))
	return nil
}
