package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	sharedCache "github.com/davicafu/sharedkernel/shared/platform/cache"
)

// DummyCache es un mock de caché en memoria, genérico y seguro para concurrencia.
// Guarda JSON, igual que los adapters reales, así que Get deserializa en dest.
type DummyCache struct {
	store map[string][]byte
	ttls  map[string]time.Duration
	mu    sync.RWMutex
}

var _ sharedCache.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{
		store: make(map[string][]byte),
		ttls:  make(map[string]time.Duration),
	}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = make(map[string][]byte)
		c.ttls = make(map[string]time.Duration)
	}
	c.store[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	delete(c.ttls, key)
	return nil
}

// Has indica si la clave está en caché.
func (c *DummyCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}

// TTL devuelve el TTL con el que se guardó key.
func (c *DummyCache) TTL(key string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ttls[key]
}

// SetForTest precarga un valor sin pasar por el servicio.
func (c *DummyCache) SetForTest(key string, val any) {
	_ = c.Set(context.Background(), key, val, 0)
}
