// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

// Date range validation errors. They are recoverable: callers at the CLI boundary
// ask the user for new input, the HTTP layer answers 400.
var (
	// ErrInvalidDateFormat indicates a date that is neither yyyy-mm-dd nor yyyy-mm.
	ErrInvalidDateFormat = errors.New("date must be in yyyy-mm-dd or yyyy-mm format")

	// ErrStartAfterEnd indicates a range whose start date lies after its end date.
	ErrStartAfterEnd = errors.New("start date is after end date")

	// ErrStartInFuture indicates a start date later than today.
	ErrStartInFuture = errors.New("start date points to the future")
)

var (
	// ErrFetch wraps any failure while downloading historical data.
	// The fetch is aborted and no partial result is returned.
	ErrFetch = errors.New("failed to fetch historical data")

	// ErrNoData indicates that an analysis was asked to run over an empty series.
	ErrNoData = errors.New("no data for the requested period")

	// ErrUnsupportedFormat indicates an export format other than csv or json.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// IsInvalidInput reports whether err is a date range validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrStartAfterEnd) ||
		errors.Is(err, ErrStartInFuture)
}
