// Package usecase は価格履歴の取得と分析のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/shared/ratelimiter"
)

const (
	// MaxDaysPerRequest は1回のリクエストで取得できる最大日数です。上流APIは1年を超える期間を拒否します。
	MaxDaysPerRequest = 366
	// DefaultCoin はコインIDが見つからない場合に使用するコインです。
	DefaultCoin = "btc-bitcoin"
)

// OHLCVRepository は日足の履歴データを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type OHLCVRepository interface {
	// GetHistorical は start から limit 日分の日足データを古い順に返します。
	GetHistorical(ctx context.Context, coin string, start time.Time, limit int) ([]entity.PriceRecord, error)
}

// CoinRepository はコインIDの存在確認を行うリポジトリのインターフェイスです。
type CoinRepository interface {
	GetCoin(ctx context.Context, id string) (entity.Coin, error)
}

// HistoryUsecase は外部APIから指定期間の価格履歴を取得するユースケースです。
type HistoryUsecase struct {
	market      OHLCVRepository
	coins       CoinRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewHistoryUsecase は新しい HistoryUsecase を作成します。rateLimiter は nil でも構いません。
func NewHistoryUsecase(market OHLCVRepository, coins CoinRepository, rateLimiter ratelimiter.RateLimiterInterface) *HistoryUsecase {
	return &HistoryUsecase{market: market, coins: coins, rateLimiter: rateLimiter}
}

// Fetch は期間全体の日足データを取得します。
//
// 期間を最大 MaxDaysPerRequest 日のウィンドウに分割して順番にリクエストし、結果を連結します。
// ウィンドウは [cursor, cursor+limit) で隙間も重複もありません。
// いずれかのリクエストが失敗した場合は途中結果を破棄し、domain.ErrFetch をラップしたエラーを返します。
func (hu *HistoryUsecase) Fetch(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
	cursor := entity.Day(r.Start)
	remaining := r.Days()
	out := make([]entity.PriceRecord, 0, max(remaining, 0))

	for remaining > 0 {
		limit := min(MaxDaysPerRequest, remaining)

		if hu.rateLimiter != nil {
			if err := hu.rateLimiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
			}
		}

		slog.Debug("fetching ohlcv page", "coin", coin, "start", cursor.Format(entity.DateLayout), "limit", limit)
		page, err := hu.market.GetHistorical(ctx, coin, cursor, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s from %s: %w", domain.ErrFetch, coin, cursor.Format(entity.DateLayout), err)
		}
		out = append(out, page...)

		cursor = cursor.AddDate(0, 0, limit)
		remaining -= limit
	}

	slog.Info("fetched historical data", "coin", coin, "range", r.String(), "records", len(out))
	return out, nil
}

// ResolveCoin はコインIDの存在を確認し、見つからない場合は DefaultCoin にフォールバックします。
// フォールバックは警告ログとして通知され、エラーにはなりません。
func (hu *HistoryUsecase) ResolveCoin(ctx context.Context, coin string) string {
	coin = strings.TrimSpace(strings.ToLower(coin))
	if coin == "" {
		slog.Warn("no coin given, falling back to default", "coin", DefaultCoin)
		return DefaultCoin
	}
	if coin == DefaultCoin {
		return coin
	}

	if _, err := hu.coins.GetCoin(ctx, coin); err != nil {
		slog.Warn("coin lookup failed, falling back to default", "coin", coin, "fallback", DefaultCoin, "error", err)
		return DefaultCoin
	}
	return coin
}
