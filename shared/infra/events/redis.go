package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/davicafu/sharedkernel/shared/domain"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	sharedEvents "github.com/davicafu/sharedkernel/shared/events"
)

// StreamAdder es el subconjunto de redis.Cmdable que usa el publicador.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamPublisher añade cada evento como entrada de un stream de Redis.
type RedisStreamPublisher struct {
	client StreamAdder
	stream string
	maxLen int64
	log    *zap.Logger
}

var _ sharedBus.EventPublisher = (*RedisStreamPublisher)(nil)

func NewRedisStreamPublisher(client StreamAdder, stream string, maxLen int64, log *zap.Logger) *RedisStreamPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen, log: log}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	ie, err := sharedEvents.FromDomainEvent(event)
	if err != nil {
		return sharedBus.NewPublishingError("failed to serialize event", err)
	}
	payload, err := json.Marshal(ie)
	if err != nil {
		return sharedBus.NewPublishingError("failed to serialize event", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]interface{}{
			"type":    ie.Type,
			"key":     ie.PartitionKey(),
			"payload": string(payload),
		},
	}).Result()
	if err != nil {
		p.log.Error("Error publishing to Redis stream",
			zap.String("stream", p.stream),
			zap.String("event_type", ie.Type),
			zap.Error(err))
		return sharedBus.NewPublishingError("failed to publish event to Redis stream", err)
	}

	p.log.Debug("Event published successfully", zap.String("stream", p.stream), zap.String("entry_id", id))
	return nil
}

// PublishAll se detiene en el primer fallo; las entradas ya añadidas no se deshacen.
func (p *RedisStreamPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}
