// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// category.go provides a Valkey-backed read-through cache in front of the
// category store. Categories are read-only during an import, so every
// lookup after the first one for a (store, id) or (store, path) pair skips
// the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogrewrite/internal/models"
)

const (
	// categoryKeyPrefix is the Valkey key prefix for cached categories.
	categoryKeyPrefix = "category:"

	// DefaultCategoryTTL is how long a category stays cached.
	DefaultCategoryTTL = 10 * time.Minute

	// opTimeout bounds every single cache round-trip.
	opTimeout = 500 * time.Millisecond
)

// CategorySource is the category lookup the cache sits in front of.
type CategorySource interface {
	FindByID(id, storeID int64) (*models.Category, error)
	FindByPath(path string, storeID int64) (*models.Category, error)
	RootCategories() ([]models.Category, error)
}

// CategoryCache caches category lookups in Valkey. Cache failures are
// logged and fall through to the source.
type CategoryCache struct {
	client *redis.Client
	next   CategorySource
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, next CategorySource, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, next: next, ttl: ttl}
}

// IDKey returns the cache key for a category by ID in a store.
func IDKey(id, storeID int64) string {
	return fmt.Sprintf("%sid:%d:%d", categoryKeyPrefix, storeID, id)
}

// PathKey returns the cache key for a category by breadcrumb in a store.
func PathKey(path string, storeID int64) string {
	return fmt.Sprintf("%spath:%d:%s", categoryKeyPrefix, storeID, path)
}

// FindByID returns the category, from cache when possible.
func (cc *CategoryCache) FindByID(id, storeID int64) (*models.Category, error) {
	key := IDKey(id, storeID)
	if c, ok := cc.get(key); ok {
		return c, nil
	}
	c, err := cc.next.FindByID(id, storeID)
	if err != nil || c == nil {
		return c, err
	}
	cc.set(key, c)
	return c, nil
}

// FindByPath returns the category, from cache when possible.
func (cc *CategoryCache) FindByPath(path string, storeID int64) (*models.Category, error) {
	key := PathKey(path, storeID)
	if c, ok := cc.get(key); ok {
		return c, nil
	}
	c, err := cc.next.FindByPath(path, storeID)
	if err != nil || c == nil {
		return c, err
	}
	cc.set(key, c)
	return c, nil
}

// RootCategories is loaded once per engine and never cached.
func (cc *CategoryCache) RootCategories() ([]models.Category, error) {
	return cc.next.RootCategories()
}

func (cc *CategoryCache) get(key string) (*models.Category, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := cc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "key", key, "error", err)
		return nil, false
	}

	var c models.Category
	if err := json.Unmarshal(val, &c); err != nil {
		slog.Warn("category cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "key", key)
	return &c, true
}

func (cc *CategoryCache) set(key string, c *models.Category) {
	data, err := json.Marshal(c)
	if err != nil {
		slog.Warn("category cache encode error", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := cc.client.Set(ctx, key, data, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached categories by scanning for the prefix.
// Run it after the category tree has been changed outside an import.
func (cc *CategoryCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, categoryKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("category cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("category cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("category cache cleared", "deleted", deleted)
	}
}
