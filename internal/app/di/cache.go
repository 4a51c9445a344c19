package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"coinstats/internal/platform/cache"
	"coinstats/internal/platform/db"
	infraredis "coinstats/internal/platform/redis"
)

// Supported cache.backend values.
const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// CacheStore is a cache.Store that can report its own health.
type CacheStore interface {
	cache.Store
	Ping(ctx context.Context) error
}

// Cache is the response cache selected by configuration.
// Store is nil when caching is disabled or the backend could not be opened.
type Cache struct {
	Backend string
	Store   CacheStore
	closers []func() error
}

// Close releases the backend connection.
func (c *Cache) Close() error {
	var errs []error
	for _, f := range c.closers {
		errs = append(errs, f())
	}
	return errors.Join(errs...)
}

// NewCache opens the backend named by cache.backend.
// 接続に失敗した場合は警告を出してキャッシュなしで動作します。
func NewCache(ctx context.Context) *Cache {
	backend := strings.ToLower(strings.TrimSpace(viper.GetString("cache.backend")))
	switch backend {
	case CacheNone:
		return &Cache{Backend: CacheNone}
	case CacheRedis:
		c, err := newRedisCache()
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
			return &Cache{Backend: CacheNone}
		}
		return c
	case "", CacheSQLite:
		c, err := newSQLiteCache(ctx)
		if err != nil {
			slog.Warn("cache database unavailable. Running without cache.", "error", err)
			return &Cache{Backend: CacheNone}
		}
		return c
	default:
		slog.Warn("unknown cache backend. Running without cache.", "backend", backend)
		return &Cache{Backend: CacheNone}
	}
}

func newRedisCache() (*Cache, error) {
	cfg := infraredis.LoadConfig()
	if cfg.Host == "" {
		return nil, errors.New("redis.host is not set")
	}
	rdb, err := infraredis.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{
		Backend: CacheRedis,
		Store:   cache.NewRedisStore(rdb),
		closers: []func() error{rdb.Close},
	}, nil
}

func newSQLiteCache(ctx context.Context) (*Cache, error) {
	gdb, err := db.OpenDB(db.LoadConfig(), db.SQLiteOpener)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("cache db handle: %w", err)
	}

	store := cache.NewSQLiteStore(gdb)
	if n, err := store.Purge(ctx); err != nil {
		slog.Warn("failed to purge expired cache entries", "error", err)
	} else if n > 0 {
		slog.Debug("purged expired cache entries", "count", n)
	}

	return &Cache{
		Backend: CacheSQLite,
		Store:   store,
		closers: []func() error{sqlDB.Close},
	}, nil
}
