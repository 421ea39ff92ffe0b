// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/usecase"
)

const dateKeyLayout = "2006-01-02"

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// Series reads are cached per instrument; every write to an instrument drops
// all of that instrument's keys.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
// A nil rdb turns the decorator into a pass-through.
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

// FindByInstrument retrieves the full series, checking cache first then falling back to the database.
func (c *CachingPriceRepository) FindByInstrument(ctx context.Context, instrumentID uint) ([]entity.PricePoint, error) {
	return c.readThrough(ctx, c.cacheKey(instrumentID, "all"), func() ([]entity.PricePoint, error) {
		return c.inner.FindByInstrument(ctx, instrumentID)
	})
}

// FindByInstrumentBetween retrieves an inclusive date window, cached per window.
func (c *CachingPriceRepository) FindByInstrumentBetween(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.PricePoint, error) {
	window := start.Format(dateKeyLayout) + ":" + end.Format(dateKeyLayout)
	return c.readThrough(ctx, c.cacheKey(instrumentID, window), func() ([]entity.PricePoint, error) {
		return c.inner.FindByInstrumentBetween(ctx, instrumentID, start, end)
	})
}

func (c *CachingPriceRepository) ExistsByInstrument(ctx context.Context, instrumentID uint) (bool, error) {
	return c.inner.ExistsByInstrument(ctx, instrumentID)
}

// Create stores a point and invalidates the instrument's cache entries.
func (c *CachingPriceRepository) Create(ctx context.Context, p *entity.PricePoint) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.InstrumentID)
	return nil
}

// DeleteByInstrument deletes the series and invalidates the instrument's cache entries.
func (c *CachingPriceRepository) DeleteByInstrument(ctx context.Context, instrumentID uint) error {
	if err := c.inner.DeleteByInstrument(ctx, instrumentID); err != nil {
		return err
	}
	c.invalidate(ctx, instrumentID)
	return nil
}

func (c *CachingPriceRepository) readThrough(ctx context.Context, key string, load func() ([]entity.PricePoint, error)) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate は銘柄のキャッシュをすべて削除します。失敗しても書き込み自体は成功扱いです。
func (c *CachingPriceRepository) invalidate(ctx context.Context, instrumentID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.cacheKeyPrefix(instrumentID)+"*"); err != nil {
		slog.Warn("failed to invalidate price cache", "instrumentID", instrumentID, "error", err)
	}
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(instrumentID uint, suffix string) string {
	return c.cacheKeyPrefix(instrumentID) + suffix
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingPriceRepository) cacheKeyPrefix(instrumentID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, instrumentID)
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
