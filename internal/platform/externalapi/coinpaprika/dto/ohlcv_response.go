// Package dto defines data transfer objects for the CoinPaprika API responses.
package dto

import "github.com/shopspring/decimal"

// OHLCVEntry represents one element of the /coins/{id}/ohlcv/historical response array.
type OHLCVEntry struct {
	TimeOpen  string          `json:"time_open"`
	TimeClose string          `json:"time_close"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"market_cap"`
}

// CoinResponse represents the subset of the /coins/{id} response used by the coin probe.
type CoinResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse is the body CoinPaprika returns alongside 4xx/5xx status codes.
type ErrorResponse struct {
	Error string `json:"error"`
}
