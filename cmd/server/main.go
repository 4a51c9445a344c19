package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"coinstats/internal/app/di"
	"coinstats/internal/app/router"
	"coinstats/internal/app/scheduler"
	priceshandler "coinstats/internal/feature/prices/transport/handler"
	"coinstats/internal/platform/config"
	"coinstats/internal/platform/http/handler"
	"coinstats/internal/platform/logger"
)

func main() {
	if err := config.Load(os.Getenv("COINSTATS_CONFIG")); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log, closer := logger.New(logger.LoadConfig())
	defer func() { _ = closer.Close() }()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// キャッシュ（SQLite / Redis / なし）
	c := di.NewCache(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close cache", "error", err)
		}
	}()

	// Usecase
	uc := di.NewPricesUsecases(c)

	// Handler
	healthH := handler.NewHealthHandler(c.Backend, c.Store)
	pricesH := priceshandler.NewPricesHandler(uc.Stats, uc.History, nil)

	// ルータ生成
	r := router.NewRouter(healthH, pricesH, viper.GetBool("server.cors"))

	// 定期ジョブ（期限切れキャッシュの削除・プリフェッチ）
	purger, _ := c.Store.(scheduler.Purger)
	sched := scheduler.New(ctx, purger, uc.Prefetch, viper.GetStringSlice("prefetch.coins"), viper.GetInt("prefetch.days"))
	if err := sched.Register(viper.GetString("scheduler.purge_cron"), viper.GetString("scheduler.prefetch_cron")); err != nil {
		slog.Error("failed to register scheduled jobs", "error", err)
		return
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              viper.GetString("server.addr"),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "cache", c.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
