package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coinstats/internal/feature/prices/domain/entity"
)

// PrefetchUsecase は複数コインの履歴を事前に取得し、レスポンスキャッシュを温めるユースケースです。
type PrefetchUsecase struct {
	history HistoryFetcher
}

// NewPrefetchUsecase は新しい PrefetchUsecase を作成します。
func NewPrefetchUsecase(history HistoryFetcher) *PrefetchUsecase {
	return &PrefetchUsecase{history: history}
}

// PrefetchAll は指定された全コインについて期間 r の日足データを取得し、取得件数の合計を返します。
// 1つのコインでエラーが発生しても処理を止めずに次のコインへ進み、失敗はまとめて返します。
// ctx がキャンセルされた場合はその時点で終了します。
func (pu *PrefetchUsecase) PrefetchAll(ctx context.Context, coins []string, r entity.DateRange) (int, error) {
	var (
		total int
		errs  []error
	)
	for _, coin := range coins {
		coin = strings.ToLower(strings.TrimSpace(coin))
		if coin == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return total, errors.Join(append(errs, err)...)
		}

		records, err := pu.history.Fetch(ctx, coin, r)
		if err != nil {
			slog.Error("failed to prefetch history", "coin", coin, "range", r.String(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", coin, err))
			continue
		}
		total += len(records)
		slog.Info("prefetched history", "coin", coin, "records", len(records))
	}
	return total, errors.Join(errs...)
}
