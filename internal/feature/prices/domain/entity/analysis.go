package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoDataLabel is printed for months without any price record.
const NoDataLabel = "No data for this month"

// MonthAverage is the average closing price of one calendar month.
// HasData is false when no record fell into the month; Average is then zero and meaningless.
type MonthAverage struct {
	Month   string          // "yyyy-mm"
	Average decimal.Decimal // rounded to 2 decimal places
	HasData bool
}

// Label renders the average, or NoDataLabel for an empty month.
func (m MonthAverage) Label() string {
	if !m.HasData {
		return NoDataLabel
	}
	return m.Average.String()
}

// MonthlyAverage lists month averages in chronological order.
type MonthlyAverage []MonthAverage

// Get looks up a month by its "yyyy-mm" label.
func (ma MonthlyAverage) Get(month string) (MonthAverage, bool) {
	for _, m := range ma {
		if m.Month == month {
			return m, true
		}
	}
	return MonthAverage{}, false
}

// IncreaseRun describes the longest stretch of consecutive non-decreasing closes.
type IncreaseRun struct {
	StartIndex int
	EndIndex   int
	Length     int
	StartDate  time.Time
	EndDate    time.Time
	PriceDelta decimal.Decimal // close[EndIndex] - close[StartIndex], rounded to 2 decimal places
}
