package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Days(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    DateRange
		want int
	}{
		{"single day", DateRange{Start: d(2024, 1, 1), End: d(2024, 1, 1)}, 1},
		{"leap year", DateRange{Start: d(2024, 1, 1), End: d(2024, 12, 31)}, 366},
		{"across years", DateRange{Start: d(2023, 12, 30), End: d(2024, 1, 2)}, 4},
		{"time of day ignored", DateRange{Start: d(2024, 1, 1).Add(23 * time.Hour), End: d(2024, 1, 2)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.r.Days())
		})
	}
}

func TestDay_UsesUTCCalendarDate(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-06-15 05:00 JST は UTC では 2024-06-14 20:00
	assert.Equal(t, d(2024, 6, 14), Day(time.Date(2024, 6, 15, 5, 0, 0, 0, tokyo)))
	assert.Equal(t, d(2024, 6, 15), Day(time.Date(2024, 6, 15, 9, 0, 0, 0, tokyo)))
	assert.Equal(t, d(2024, 6, 14), LastDays(time.Date(2024, 6, 15, 5, 0, 0, 0, tokyo), 1).End)
}

func TestDateRange_MonthSpan(t *testing.T) {
	t.Parallel()

	r := DateRange{Start: d(2023, 11, 15), End: d(2024, 2, 3)}.MonthSpan()

	assert.Equal(t, d(2023, 11, 1), r.Start)
	assert.Equal(t, d(2024, 2, 29), r.End)
}

func TestLastOfMonth_December(t *testing.T) {
	t.Parallel()

	assert.Equal(t, d(2023, 12, 31), LastOfMonth(d(2023, 12, 5)))
	assert.Equal(t, d(2023, 2, 28), LastOfMonth(d(2023, 2, 1)))
}

func TestDateRange_ClampEnd(t *testing.T) {
	t.Parallel()

	r := DateRange{Start: d(2024, 1, 1), End: d(2024, 12, 31)}
	today := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, d(2024, 6, 15), r.ClampEnd(today).End)
	assert.Equal(t, r, DateRange{Start: d(2024, 1, 1), End: d(2024, 12, 31)}, "receiver is not modified")
	assert.Equal(t, d(2024, 3, 1), DateRange{Start: d(2024, 1, 1), End: d(2024, 3, 1)}.ClampEnd(today).End)
}

func TestLastDays(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	r := LastDays(today, 366)
	assert.Equal(t, d(2023, 6, 16), r.Start)
	assert.Equal(t, d(2024, 6, 15), r.End)
	assert.Equal(t, 366, r.Days())

	assert.Equal(t, 1, LastDays(today, 0).Days())
}

func TestDateRange_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-01-01..2024-01-31", DateRange{Start: d(2024, 1, 1), End: d(2024, 1, 31)}.String())
}
