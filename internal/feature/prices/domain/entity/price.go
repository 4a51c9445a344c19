// Package entity defines the domain models for the prices feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date layout used for input, output and cache keys.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month layout used for monthly buckets.
const MonthLayout = "2006-01"

// PriceRecord is one daily OHLCV entry as returned by the upstream API.
// Records are never modified after they are fetched.
type PriceRecord struct {
	OpenTime  time.Time       `json:"time_open"`  // Start of the trading day (UTC)
	CloseTime time.Time       `json:"time_close"` // End of the trading day (UTC)
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"market_cap"`
}

// Date returns the calendar date of the record's open time.
func (p PriceRecord) Date() string {
	return p.OpenTime.UTC().Format(DateLayout)
}

// RoundedClose returns the closing price rounded to 2 decimal places.
func (p PriceRecord) RoundedClose() decimal.Decimal {
	return p.Close.Round(2)
}

// Coin identifies a coin known to the upstream API.
type Coin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}
