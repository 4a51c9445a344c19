package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinstats/internal/feature/prices/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDateRange(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   error
	}{
		{
			name:      "day form is kept as is",
			start:     "2023-01-10",
			end:       "2023-02-20",
			wantStart: date(2023, 1, 10),
			wantEnd:   date(2023, 2, 20),
		},
		{
			name:      "month form expands to whole months",
			start:     "2023-01",
			end:       "2023-02",
			wantStart: date(2023, 1, 1),
			wantEnd:   date(2023, 2, 28),
		},
		{
			name:      "leap year february",
			start:     "2024-02",
			end:       "2024-02",
			wantStart: date(2024, 2, 1),
			wantEnd:   date(2024, 2, 29),
		},
		{
			name:      "december end rolls the year",
			start:     "2022-11",
			end:       "2022-12",
			wantStart: date(2022, 11, 1),
			wantEnd:   date(2022, 12, 31),
		},
		{
			name:      "mixed forms",
			start:     "2023-05",
			end:       "2023-06-03",
			wantStart: date(2023, 5, 1),
			wantEnd:   date(2023, 6, 3),
		},
		{
			name:      "single day range",
			start:     "2023-05-05",
			end:       "2023-05-05",
			wantStart: date(2023, 5, 5),
			wantEnd:   date(2023, 5, 5),
		},
		{
			name:      "future end is clamped to today",
			start:     "2024-01-01",
			end:       "2025-12-31",
			wantStart: date(2024, 1, 1),
			wantEnd:   date(2024, 3, 15),
		},
		{
			name:      "current month end is clamped to today",
			start:     "2024-03",
			end:       "2024-03",
			wantStart: date(2024, 3, 1),
			wantEnd:   date(2024, 3, 15),
		},
		{
			name:      "surrounding whitespace is ignored",
			start:     " 2023-01-10 ",
			end:       "2023-01-11\n",
			wantStart: date(2023, 1, 10),
			wantEnd:   date(2023, 1, 11),
		},
		{name: "empty start", start: "", end: "2023-01-01", wantErr: domain.ErrInvalidDateFormat},
		{name: "empty end", start: "2023-01-01", end: "", wantErr: domain.ErrInvalidDateFormat},
		{name: "unpadded day", start: "2023-1-01", end: "2023-01-02", wantErr: domain.ErrInvalidDateFormat},
		{name: "invalid month", start: "2023-13", end: "2023-12", wantErr: domain.ErrInvalidDateFormat},
		{name: "invalid day", start: "2023-02-30", end: "2023-03-01", wantErr: domain.ErrInvalidDateFormat},
		{name: "garbage", start: "yesterday!", end: "2023-03-01", wantErr: domain.ErrInvalidDateFormat},
		{name: "start after end", start: "2023-03-02", end: "2023-03-01", wantErr: domain.ErrStartAfterEnd},
		{name: "start in future", start: "2024-03-16", end: "2024-04-01", wantErr: domain.ErrStartInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NormalizeDateRange(tt.start, tt.end, today)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domain.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
		})
	}
}

func TestNormalizeDateRange_ValidRangeUnchanged(t *testing.T) {
	t.Parallel()

	today := date(2025, 1, 1)
	for start := date(2023, 12, 25); start.Before(date(2024, 1, 10)); start = start.AddDate(0, 0, 1) {
		for _, span := range []int{0, 1, 30, 200} {
			end := start.AddDate(0, 0, span)
			r, err := NormalizeDateRange(start.Format("2006-01-02"), end.Format("2006-01-02"), today)
			require.NoError(t, err)
			assert.Equal(t, start, r.Start)
			assert.Equal(t, end, r.End)
			assert.Equal(t, span+1, r.Days())
		}
	}
}
