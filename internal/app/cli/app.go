package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/feature/prices/usecase"
)

// StatsService はCLIが利用する分析ユースケースです。
type StatsService interface {
	MonthlyAverages(ctx context.Context, coin string, r entity.DateRange) (entity.MonthlyAverage, error)
	LongestIncrease(ctx context.Context, coin string, r entity.DateRange) (entity.IncreaseRun, error)
	History(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error)
}

// CoinResolver はコインIDを検証し、必要ならデフォルトにフォールバックします。
type CoinResolver interface {
	ResolveCoin(ctx context.Context, coin string) string
}

// Exporter は価格履歴をファイルに書き出します。
type Exporter interface {
	CheckFormat(format string) error
	Export(records []entity.PriceRecord, coin, format, fileName string) (string, error)
}

var (
	_ StatsService = (*usecase.StatsUsecase)(nil)
	_ CoinResolver = (*usecase.HistoryUsecase)(nil)
	_ Exporter     = (*usecase.ExportUsecase)(nil)
)

// App runs one coinstats mode against injected usecases.
type App struct {
	stats    StatsService
	coins    CoinResolver
	exporter Exporter
	in       io.Reader
	out      io.Writer
	now      func() time.Time
}

// NewApp creates an App reading prompts from in and writing results to out.
func NewApp(stats StatsService, coins CoinResolver, exporter Exporter, in io.Reader, out io.Writer) *App {
	return &App{stats: stats, coins: coins, exporter: exporter, in: in, out: out, now: time.Now}
}

// Run validates the date range, resolves the coin and executes mode.
func (a *App) Run(ctx context.Context, mode Mode, opts Options) error {
	r, err := PromptDateRange(opts.StartDate, opts.EndDate, a.now(), a.in, a.out)
	if err != nil {
		return err
	}
	coin := a.coins.ResolveCoin(ctx, opts.Coin)
	slog.Info("running", "mode", mode.String(), "coin", coin, "range", r.String())

	switch mode {
	case ModeAverage:
		return a.average(ctx, coin, r)
	case ModeIncrease:
		return a.increase(ctx, coin, r)
	case ModeExport:
		return a.export(ctx, coin, r, opts.Format, opts.File)
	default:
		return fmt.Errorf("unknown mode %d", mode)
	}
}

func (a *App) average(ctx context.Context, coin string, r entity.DateRange) error {
	months, err := a.stats.MonthlyAverages(ctx, coin, r)
	if err != nil {
		return err
	}
	for _, m := range months {
		_, _ = fmt.Fprintf(a.out, "%s | %s\n", m.Month, m.Label())
	}
	return nil
}

func (a *App) increase(ctx context.Context, coin string, r entity.DateRange) error {
	run, err := a.stats.LongestIncrease(ctx, coin, r)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Longest consecutive increase in value was from %s to %s with increase of %s$\n",
		run.StartDate.Format(entity.DateLayout), run.EndDate.Format(entity.DateLayout), run.PriceDelta.String())
	return nil
}

func (a *App) export(ctx context.Context, coin string, r entity.DateRange, format, file string) error {
	format = cmp.Or(strings.ToLower(strings.TrimSpace(format)), usecase.DefaultFormat)
	if err := a.exporter.CheckFormat(format); err != nil {
		return err
	}

	records, err := a.stats.History(ctx, coin, r)
	if err != nil {
		return err
	}
	if _, err := a.exporter.Export(records, coin, format, file); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Data successfully exported to %s file\n", strings.ToUpper(format))
	return nil
}

func (m Mode) String() string {
	switch m {
	case ModeAverage:
		return "average-price-by-month"
	case ModeIncrease:
		return "consecutive-increase"
	case ModeExport:
		return "export"
	default:
		return "none"
	}
}
