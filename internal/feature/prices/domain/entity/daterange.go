package entity

import (
	"fmt"
	"time"
)

// DateRange is an inclusive range of calendar dates, both stored as UTC midnight.
// A normalized range always satisfies Start <= End <= today.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight of its UTC calendar date. Daily candles are cut at UTC
// midnight, so "today" is always the UTC date regardless of the local zone.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns midnight UTC of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// LastOfMonth returns midnight UTC of the last day of t's month.
// time.Date normalizes month 13 into January of the next year.
func LastOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Days returns the number of calendar days covered by the range, both ends included.
func (r DateRange) Days() int {
	return int(Day(r.End).Sub(Day(r.Start)).Hours()/24) + 1
}

// MonthSpan widens the range to whole months: the first day of Start's month
// through the last day of End's month.
func (r DateRange) MonthSpan() DateRange {
	return DateRange{Start: FirstOfMonth(r.Start), End: LastOfMonth(r.End)}
}

// ClampEnd returns a copy of the range whose End is not after limit.
func (r DateRange) ClampEnd(limit time.Time) DateRange {
	limit = Day(limit)
	if r.End.After(limit) {
		r.End = limit
	}
	return r
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// LastDays returns the n-day range ending on today's date. n below 1 is treated as 1.
func LastDays(today time.Time, n int) DateRange {
	end := Day(today)
	return DateRange{Start: end.AddDate(0, 0, 1-max(n, 1)), End: end}
}
