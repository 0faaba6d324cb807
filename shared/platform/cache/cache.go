package cache

import (
	"context"
	"time"
)

// Cache define la interfaz para una caché de clave-valor genérica.
type Cache interface {
	// Get intenta poblar 'dest' (que debe ser un puntero) con el valor asociado a la 'key'.
	// Devuelve (true, nil) si hay un 'hit' y (false, nil) si es un 'miss'.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set serializa y guarda el valor con el TTL indicado.
	Set(ctx context.Context, key string, val any, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}

// Key construye claves del tipo "<prefijo>:<id>".
func Key(prefix, id string) string {
	return prefix + ":" + id
}
