package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const writeTimeout = 200 * time.Millisecond

// Store guarda value con un timeout acotado. Un fallo de caché nunca falla la operación:
// solo se registra.
func Store(ctx context.Context, c Cache, key string, value any, ttl time.Duration, log *zap.Logger) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := c.Set(ctx, key, value, ttl); err != nil && log != nil {
		log.Warn("Cache update failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Invalidate elimina la clave de forma síncrona; un fallo solo se registra.
func Invalidate(ctx context.Context, c Cache, key string, log *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, key); err != nil && log != nil {
		log.Warn("Cache deletion failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
