// Package coinpaprika provides a client for the CoinPaprika cryptocurrency market data API.
package coinpaprika

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public (free tier) API endpoint.
const DefaultBaseURL = "https://api.coinpaprika.com/v1"

// Config holds configuration for the CoinPaprika API client.
type Config struct {
	APIKey  string        // Optional API key for the paid tier, sent as the Authorization header
	BaseURL string        // Base URL for the API (e.g., "https://api.coinpaprika.com/v1")
	Quote   string        // Quote currency for OHLCV data (e.g., "usd")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads CoinPaprika configuration from the process-wide viper registry.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  viper.GetString("coinpaprika.api_key"),
		BaseURL: viper.GetString("coinpaprika.base_url"),
		Quote:   viper.GetString("coinpaprika.quote"),
		Timeout: viper.GetDuration("coinpaprika.timeout"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Quote == "" {
		cfg.Quote = "usd"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg
}
