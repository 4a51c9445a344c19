package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
)

// mockHistoryFetcher is a mock implementation of the HistoryFetcher interface.
type mockHistoryFetcher struct {
	FetchFunc func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error)
	ranges    []entity.DateRange
}

func (m *mockHistoryFetcher) Fetch(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
	m.ranges = append(m.ranges, r)
	return m.FetchFunc(ctx, coin, r)
}

func newStatsUsecase(fetcher HistoryFetcher, today time.Time) *StatsUsecase {
	su := NewStatsUsecase(fetcher)
	su.now = func() time.Time { return today }
	return su
}

func TestStatsUsecase_MonthlyAverages_WidensToWholeMonths(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return dailyRecords(date(2023, 1, 1), 10, 20, 30), nil
		},
	}
	su := newStatsUsecase(fetcher, date(2024, 6, 1))

	r := entity.DateRange{Start: date(2023, 1, 15), End: date(2023, 2, 10)}
	got, err := su.MonthlyAverages(context.Background(), "btc-bitcoin", r)
	require.NoError(t, err)

	require.Len(t, fetcher.ranges, 1)
	assert.Equal(t, date(2023, 1, 1), fetcher.ranges[0].Start)
	assert.Equal(t, date(2023, 2, 28), fetcher.ranges[0].End)

	require.Len(t, got, 2)
	assert.Equal(t, "20", got[0].Average.String())
	assert.False(t, got[1].HasData)
}

func TestStatsUsecase_MonthlyAverages_ClampsToToday(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return nil, nil
		},
	}
	su := newStatsUsecase(fetcher, time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))

	r := entity.DateRange{Start: date(2024, 3, 1), End: date(2024, 3, 10)}
	_, err := su.MonthlyAverages(context.Background(), "btc-bitcoin", r)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 3, 10), fetcher.ranges[0].End)
}

func TestStatsUsecase_MonthlyAverages_SameTodayAsNormalizer(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return nil, nil
		},
	}
	// UTC の日付が変わる前の東側タイムゾーン
	now := time.Date(2024, 3, 11, 6, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	su := newStatsUsecase(fetcher, now)

	r, err := NormalizeDateRange("2024-03", "2024-03", now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 10), r.End)

	_, err = su.MonthlyAverages(context.Background(), "btc-bitcoin", r)
	require.NoError(t, err)
	assert.Equal(t, r.End, fetcher.ranges[0].End)
}

func TestStatsUsecase_MonthlyAverages_FetchError(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return nil, domain.ErrFetch
		},
	}
	su := newStatsUsecase(fetcher, date(2024, 6, 1))

	_, err := su.MonthlyAverages(context.Background(), "btc-bitcoin", entity.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)})

	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestStatsUsecase_LongestIncrease(t *testing.T) {
	t.Parallel()

	r := entity.DateRange{Start: date(2023, 1, 1), End: date(2023, 1, 5)}
	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, got entity.DateRange) ([]entity.PriceRecord, error) {
			assert.Equal(t, r, got)
			return dailyRecords(got.Start, 3, 1, 2, 4, 2), nil
		},
	}
	su := newStatsUsecase(fetcher, date(2024, 6, 1))

	run, err := su.LongestIncrease(context.Background(), "btc-bitcoin", r)
	require.NoError(t, err)

	assert.Equal(t, 3, run.Length)
	assert.Equal(t, "3", run.PriceDelta.String())
}

func TestStatsUsecase_LongestIncrease_NoData(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return []entity.PriceRecord{}, nil
		},
	}
	su := newStatsUsecase(fetcher, date(2024, 6, 1))

	_, err := su.LongestIncrease(context.Background(), "btc-bitcoin", entity.DateRange{Start: date(2023, 1, 1), End: date(2023, 1, 5)})

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestStatsUsecase_History(t *testing.T) {
	t.Parallel()

	records := dailyRecords(date(2023, 1, 1), 1, 2)
	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			return records, nil
		},
	}
	su := newStatsUsecase(fetcher, date(2024, 6, 1))

	got, err := su.History(context.Background(), "eth-ethereum", entity.DateRange{Start: date(2023, 1, 1), End: date(2023, 1, 2)})
	require.NoError(t, err)

	assert.Equal(t, records, got)
}
