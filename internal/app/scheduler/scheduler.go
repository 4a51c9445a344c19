// Package scheduler runs periodic cache maintenance for the HTTP server.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"coinstats/internal/feature/prices/domain/entity"
)

// Purger removes expired cache entries. SQLiteStore implements it.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Prefetcher warms the cache for a list of coins. PrefetchUsecase implements it.
type Prefetcher interface {
	PrefetchAll(ctx context.Context, coins []string, r entity.DateRange) (int, error)
}

// Scheduler manages the cron jobs. Specs use the six-field format with seconds.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	purger     Purger
	prefetcher Prefetcher
	coins      []string
	days       int
	now        func() time.Time
}

// New creates a Scheduler. purger or prefetcher may be nil; their jobs are then never registered.
func New(ctx context.Context, purger Purger, prefetcher Prefetcher, coins []string, days int) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		ctx:        ctx,
		purger:     purger,
		prefetcher: prefetcher,
		coins:      coins,
		days:       days,
		now:        time.Now,
	}
}

// Register adds the purge and prefetch jobs. An empty spec disables that job.
func (s *Scheduler) Register(purgeSpec, prefetchSpec string) error {
	if purgeSpec != "" && s.purger != nil {
		if _, err := s.cron.AddFunc(purgeSpec, s.purge); err != nil {
			return fmt.Errorf("register purge job: %w", err)
		}
	}
	if prefetchSpec != "" && s.prefetcher != nil && len(s.coins) > 0 {
		if _, err := s.cron.AddFunc(prefetchSpec, s.prefetch); err != nil {
			return fmt.Errorf("register prefetch job: %w", err)
		}
	}
	return nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", s.Jobs())
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) purge() {
	n, err := s.purger.Purge(s.ctx)
	if err != nil {
		slog.Error("cache purge failed", "error", err)
		return
	}
	slog.Info("cache purged", "removed", n)
}

func (s *Scheduler) prefetch() {
	r := entity.LastDays(s.now().UTC(), s.days)
	total, err := s.prefetcher.PrefetchAll(s.ctx, s.coins, r)
	if err != nil {
		slog.Error("scheduled prefetch failed", "records", total, "error", err)
		return
	}
	slog.Info("scheduled prefetch done", "records", total, "range", r.String())
}
