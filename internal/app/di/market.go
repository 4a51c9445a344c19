// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/spf13/viper"

	"coinstats/internal/platform/externalapi/coinpaprika"
	infrahttp "coinstats/internal/platform/http"
)

// NewMarket creates a fully configured CoinPaprikaMarket with HTTP client.
func NewMarket() *coinpaprika.CoinPaprikaMarket {
	cfg := coinpaprika.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, viper.GetString("coinpaprika.proxy"))
	return coinpaprika.NewCoinPaprikaMarket(cfg, httpClient)
}
