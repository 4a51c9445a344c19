package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"coinstats/internal/app/di"
	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/platform/config"
	"coinstats/internal/platform/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.Load(os.Getenv("COINSTATS_CONFIG")); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	log, closer := logger.New(logger.LoadConfig())
	defer func() { _ = closer.Close() }()
	slog.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c := di.NewCache(ctx)
	defer func() { _ = c.Close() }()
	if c.Store == nil {
		slog.Warn("no cache backend available; prefetched data will not be kept")
	}
	uc := di.NewPricesUsecases(c)

	// 今日を含む直近 prefetch.days 日
	r := entity.LastDays(time.Now().UTC(), viper.GetInt("prefetch.days"))

	total, err := uc.Prefetch.PrefetchAll(ctx, viper.GetStringSlice("prefetch.coins"), r)
	if err != nil {
		slog.Error("prefetch finished with errors", "records", total, "error", err)
		return 1
	}
	slog.Info("prefetch ok", "records", total, "range", r.String())
	return 0
}
