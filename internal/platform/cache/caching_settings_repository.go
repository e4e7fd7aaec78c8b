// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_backend/internal/feature/settings/usecase"
)

// CachingSettingsRepository decorates a SettingsRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Settings documents change rarely but
// are read on every order, so a short TTL keeps the database mostly idle.
type CachingSettingsRepository struct {
	inner     usecase.SettingsRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SettingsRepository = (*CachingSettingsRepository)(nil)

// NewCachingSettingsRepository decorates a SettingsRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "settings".
func NewCachingSettingsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SettingsRepository, namespace string) *CachingSettingsRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "settings"
	}
	return &CachingSettingsRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetByKey retrieves a settings document, checking cache first then falling
// back to the database. Missing keys are never cached.
func (c *CachingSettingsRepository) GetByKey(ctx context.Context, key string) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetByKey(ctx, key)
	}

	cacheKey := c.cacheKey(key)

	// 1) Check cache
	if v, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil && v != "" {
		return v, nil
	}

	// 2) Fallback to database
	value, err := c.inner.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, cacheKey, value, c.ttl).Err()

	return value, nil
}

// Save writes the document through to the database and invalidates the
// cached copy so the next read observes the new value.
func (c *CachingSettingsRepository) Save(ctx context.Context, key, value string) error {
	if err := c.inner.Save(ctx, key, value); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the save if cache invalidation fails
	_ = c.rdb.Del(ctx, c.cacheKey(key)).Err()
	return nil
}

// cacheKey generates the Redis key for one settings document.
func (c *CachingSettingsRepository) cacheKey(key string) string {
	return c.namespace + ":" + safe(key)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
