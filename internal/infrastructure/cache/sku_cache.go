// Package cache provides Redis-backed caches for hot read paths.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/catalog"
)

const defaultSKUKeyPrefix = "sku:code:"

// RedisSKUCache is a read-through SKU cache shared across instances.
// Entries expire after the configured TTL; every stock write must call
// Invalidate so availability reads never serve a stale quantity for long.
type RedisSKUCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSKUCache creates a cache on an existing Redis client
func NewRedisSKUCache(client *redis.Client, ttl time.Duration) *RedisSKUCache {
	return &RedisSKUCache{
		client:    client,
		keyPrefix: defaultSKUKeyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached SKU, or (nil, nil) on a cache miss
func (c *RedisSKUCache) Get(ctx context.Context, code string) (*catalog.SKU, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+code).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read SKU from cache: %w", err)
	}

	var sku catalog.SKU
	if err := json.Unmarshal(payload, &sku); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it
		return nil, nil
	}
	return &sku, nil
}

// Set stores the SKU under its code with the configured TTL
func (c *RedisSKUCache) Set(ctx context.Context, sku *catalog.SKU) error {
	payload, err := json.Marshal(sku)
	if err != nil {
		return fmt.Errorf("failed to marshal SKU for cache: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+sku.Code, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write SKU to cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry for the given SKU code
func (c *RedisSKUCache) Invalidate(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, c.keyPrefix+code).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached SKU: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisSKUCache) Close() error {
	return c.client.Close()
}

var _ appledger.SKUCache = (*RedisSKUCache)(nil)
