// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"journal_backend/internal/feature/prices/domain/entity"
	"journal_backend/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch inserts or updates bars and invalidates related cache entries.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, bars []entity.PriceBar) error {
	// First upsert to the underlying repository (Postgres)
	if err := c.inner.UpsertBatch(ctx, bars); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no bars
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per symbol+range+interval)
	seen := map[string]struct{}{}
	for _, b := range bars {
		prefix := c.cacheKeyPrefix(b.Symbol, b.Range, b.Interval)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	}
	return nil
}

// Exists delegates straight to the underlying repository.
// 存在チェックは取り込みの前段でのみ使われるため、キャッシュしません。
func (c *CachingPriceRepository) Exists(ctx context.Context, symbol, rng, interval string) (bool, error) {
	return c.inner.Exists(ctx, symbol, rng, interval)
}

// Find retrieves bars, checking cache first then falling back to the database.
func (c *CachingPriceRepository) Find(ctx context.Context, symbol, rng, interval string, limit int) ([]entity.PriceBar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, rng, interval, limit)
	}

	key := c.cacheKey(symbol, rng, interval, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceBar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Find(ctx, symbol, rng, interval, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(symbol, rng, interval string, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(rng),
		safe(interval),
		limit,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingPriceRepository) cacheKeyPrefix(symbol, rng, interval string) string {
	return fmt.Sprintf("%s:%s:%s:%s:",
		c.namespace,
		safe(symbol),
		safe(rng),
		safe(interval),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	// Simple escaping of characters that are problematic for Redis keys
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
