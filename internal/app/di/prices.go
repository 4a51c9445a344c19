package di

import (
	"time"

	"github.com/spf13/viper"

	"coinstats/internal/feature/prices/adapters/export"
	"coinstats/internal/feature/prices/usecase"
	"coinstats/internal/platform/cache"
	"coinstats/internal/shared/ratelimiter"
)

// PricesUsecases bundles the usecases shared by the CLI and the HTTP server.
type PricesUsecases struct {
	History  *usecase.HistoryUsecase
	Stats    *usecase.StatsUsecase
	Export   *usecase.ExportUsecase
	Prefetch *usecase.PrefetchUsecase
}

// NewPricesUsecases wires the CoinPaprika market, the response cache and request pacing.
func NewPricesUsecases(c *Cache) PricesUsecases {
	market := NewMarket()

	var store cache.Store
	if c != nil && c.Store != nil {
		store = c.Store
	}
	cached := cache.NewCachingOHLCVRepository(store, viper.GetDuration("cache.ttl"), market, cache.DefaultNamespace)

	rl := ratelimiter.NewRateLimiter(viper.GetInt("coinpaprika.rate_per_sec"), time.Second)

	history := usecase.NewHistoryUsecase(cached, market, rl)
	return PricesUsecases{
		History:  history,
		Stats:    usecase.NewStatsUsecase(history),
		Export:   usecase.NewExportUsecase(ExportWriters()),
		Prefetch: usecase.NewPrefetchUsecase(history),
	}
}

// ExportWriters maps each supported export format to its writer.
func ExportWriters() map[string]usecase.RecordWriter {
	return map[string]usecase.RecordWriter{
		usecase.FormatCSV:  export.WriteCSV,
		usecase.FormatJSON: export.WriteJSON,
	}
}
