// Package catalogcache stores built product catalogs with a TTL.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/assetsearch/internal/db"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
)

// store is the consumer interface for the catalog cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache keeps one catalog per content filter.
type Cache struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a catalog cache. prefix is the global storage key prefix.
func New(s store, prefix string, ttl time.Duration) *Cache {
	return &Cache{store: s, prefix: prefix + "catalog:", ttl: ttl}
}

// Get returns the cached catalog for content. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, content string) ([]product.Product, bool, error) {
	key := c.prefix + content
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return products, true, nil
}

// Put caches the catalog for content.
func (c *Cache) Put(ctx context.Context, content string, products []product.Product) error {
	key := c.prefix + content
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached catalog.
func (c *Cache) Invalidate(ctx context.Context) error {
	keys, err := c.store.Scan(ctx, c.prefix+"*")
	if err != nil {
		return fmt.Errorf("scan %s*: %w", c.prefix, err)
	}
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}
	return nil
}
