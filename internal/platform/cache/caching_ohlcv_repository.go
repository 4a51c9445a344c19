package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/feature/prices/usecase"
)

const (
	// DefaultTTL matches the expiry window of the response cache.
	DefaultTTL       = 180 * time.Second
	DefaultNamespace = "ohlcv"
)

// CachingOHLCVRepository decorates an OHLCVRepository with a read-through cache.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingOHLCVRepository struct {
	inner     usecase.OHLCVRepository
	store     Store
	ttl       time.Duration
	namespace string
}

var _ usecase.OHLCVRepository = (*CachingOHLCVRepository)(nil)

// NewCachingOHLCVRepository decorates an OHLCVRepository with caching.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses "ohlcv".
// A nil store disables caching entirely.
func NewCachingOHLCVRepository(store Store, ttl time.Duration, inner usecase.OHLCVRepository, namespace string) *CachingOHLCVRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingOHLCVRepository{
		inner:     inner,
		store:     store,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetHistorical returns a cached page when present, otherwise calls the inner repository
// and stores its result. Errors from the inner repository are never cached.
func (c *CachingOHLCVRepository) GetHistorical(ctx context.Context, coin string, start time.Time, limit int) ([]entity.PriceRecord, error) {
	// Bypass cache if no store is configured
	if c.store == nil {
		return c.inner.GetHistorical(ctx, coin, start, limit)
	}

	key := historyKey(c.namespace, coin, start, limit)

	// 1) Check cache
	b, err := c.store.Get(ctx, key)
	switch {
	case err == nil && len(b) > 0:
		var out []entity.PriceRecord
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("ohlcv cache hit", "key", key)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.store.Delete(ctx, key)
	case err != nil && !errors.Is(err, ErrCacheMiss):
		slog.Warn("ohlcv cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to the upstream API
	out, err := c.inner.GetHistorical(ctx, coin, start, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
			slog.Warn("ohlcv cache write failed", "key", key, "error", err)
		}
	}

	return out, nil
}
