package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
)

func TestPrefetchUsecase_PrefetchAll(t *testing.T) {
	t.Parallel()

	r := entity.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
	var fetched []string
	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, got entity.DateRange) ([]entity.PriceRecord, error) {
			fetched = append(fetched, coin)
			assert.Equal(t, r, got)
			return dailyRecords(got.Start, 1, 2, 3), nil
		},
	}

	total, err := NewPrefetchUsecase(fetcher).PrefetchAll(context.Background(), []string{"BTC-Bitcoin", " ", "eth-ethereum"}, r)
	require.NoError(t, err)

	assert.Equal(t, 6, total)
	assert.Equal(t, []string{"btc-bitcoin", "eth-ethereum"}, fetched)
}

func TestPrefetchUsecase_PrefetchAll_ContinuesOnError(t *testing.T) {
	t.Parallel()

	fetcher := &mockHistoryFetcher{
		FetchFunc: func(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
			if coin == "bad-coin" {
				return nil, domain.ErrFetch
			}
			return dailyRecords(r.Start, 1), nil
		},
	}

	total, err := NewPrefetchUsecase(fetcher).PrefetchAll(context.Background(), []string{"bad-coin", "btc-bitcoin"}, entity.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 1)})

	assert.Equal(t, 1, total)
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.ErrorContains(t, err, "bad-coin")
	assert.Len(t, fetcher.ranges, 2)
}

func TestPrefetchUsecase_PrefetchAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &mockHistoryFetcher{}

	_, err := NewPrefetchUsecase(fetcher).PrefetchAll(ctx, []string{"btc-bitcoin"}, entity.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 1)})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.ranges)
}
