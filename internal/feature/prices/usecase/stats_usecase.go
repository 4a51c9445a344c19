package usecase

import (
	"context"
	"time"

	"coinstats/internal/feature/prices/domain/entity"
)

// HistoryFetcher は期間全体の価格履歴を取得するインターフェイスです。HistoryUsecase が実装します。
type HistoryFetcher interface {
	Fetch(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error)
}

var _ HistoryFetcher = (*HistoryUsecase)(nil)

// StatsUsecase は取得と集計を組み合わせ、CLI と HTTP の両方から使われる分析ユースケースです。
type StatsUsecase struct {
	history HistoryFetcher
	now     func() time.Time
}

// NewStatsUsecase は新しい StatsUsecase を作成します。
func NewStatsUsecase(history HistoryFetcher) *StatsUsecase {
	return &StatsUsecase{history: history, now: time.Now}
}

// MonthlyAverages は r に含まれる各月の終値平均を返します。
// 月の途中から指定された場合でも月全体を取得するため、取得期間は月単位に広げ、今日で打ち切ります。
func (su *StatsUsecase) MonthlyAverages(ctx context.Context, coin string, r entity.DateRange) (entity.MonthlyAverage, error) {
	span := r.MonthSpan().ClampEnd(su.now())
	records, err := su.history.Fetch(ctx, coin, span)
	if err != nil {
		return nil, err
	}
	return AverageByMonth(records, r), nil
}

// LongestIncrease は r の期間で終値が下落しなかった最長区間を返します。
func (su *StatsUsecase) LongestIncrease(ctx context.Context, coin string, r entity.DateRange) (entity.IncreaseRun, error) {
	records, err := su.history.Fetch(ctx, coin, r)
	if err != nil {
		return entity.IncreaseRun{}, err
	}
	return LongestNonDecreasingRun(records)
}

// History は r の期間の日足データをそのまま返します。
func (su *StatsUsecase) History(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
	return su.history.Fetch(ctx, coin, r)
}
