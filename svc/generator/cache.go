package generator

import (
	"context"
	"time"

	"github.com/dmitrymomot/qrgen/pkg/cache"
	"github.com/dmitrymomot/qrgen/pkg/redis"
)

// Cache stores rendered images by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, image []byte) error
}

// MemoryCache keeps images in a process local LRU.
type MemoryCache struct {
	lru *cache.LRU[string, []byte]
}

// NewMemoryCache holds up to size images for ttl each (zero ttl: no expiry).
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRU(size, cache.WithTTL[string, []byte](ttl))}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, image []byte) error {
	c.lru.Put(key, image)
	return nil
}

// RedisCache shares images between instances through redis.
type RedisCache struct {
	store *redis.Storage
	ttl   time.Duration
}

func NewRedisCache(store *redis.Storage, ttl time.Duration) *RedisCache {
	return &RedisCache{store: store, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.store.Get(ctx, key)
}

func (c *RedisCache) Set(ctx context.Context, key string, image []byte) error {
	return c.store.Set(ctx, key, image, c.ttl)
}
