package coinpaprika

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/feature/prices/usecase"
	"coinstats/internal/platform/externalapi/coinpaprika/dto"
)

// CoinPaprikaMarket はCoinPaprika外部APIから価格データを取得するリポジトリ実装です。
type CoinPaprikaMarket struct {
	cfg    Config
	client *http.Client
}

// CoinPaprikaMarketがusecaseのインターフェイスを実装していることをコンパイル時に検証します。
var (
	_ usecase.OHLCVRepository = (*CoinPaprikaMarket)(nil)
	_ usecase.CoinRepository  = (*CoinPaprikaMarket)(nil)
)

// NewCoinPaprikaMarket は指定された設定とHTTPクライアントでCoinPaprikaMarketの新しいインスタンスを生成します。
func NewCoinPaprikaMarket(cfg Config, client *http.Client) *CoinPaprikaMarket {
	return &CoinPaprikaMarket{cfg: cfg, client: client}
}

// GetHistorical は start から limit 日分の日足データを取得し、entity.PriceRecord のスライスとして返します。
func (c *CoinPaprikaMarket) GetHistorical(ctx context.Context, coin string, start time.Time, limit int) ([]entity.PriceRecord, error) {
	q := url.Values{}
	q.Set("start", start.Format(entity.DateLayout))
	q.Set("limit", strconv.Itoa(limit))
	if c.cfg.Quote != "" {
		q.Set("quote", c.cfg.Quote)
	}

	u := fmt.Sprintf("%s/coins/%s/ohlcv/historical?%s", c.cfg.BaseURL, url.PathEscape(coin), q.Encode())

	var body []dto.OHLCVEntry
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	records := make([]entity.PriceRecord, 0, len(body))
	for _, v := range body {
		// タイムスタンプをパース
		open, err := time.Parse(time.RFC3339, v.TimeOpen)
		if err != nil {
			return nil, fmt.Errorf("parse time_open %q: %w", v.TimeOpen, err)
		}
		closeTime, err := time.Parse(time.RFC3339, v.TimeClose)
		if err != nil {
			return nil, fmt.Errorf("parse time_close %q: %w", v.TimeClose, err)
		}

		records = append(records, entity.PriceRecord{
			OpenTime:  open.UTC(),
			CloseTime: closeTime.UTC(),
			Open:      v.Open,
			High:      v.High,
			Low:       v.Low,
			Close:     v.Close,
			Volume:    v.Volume,
			MarketCap: v.MarketCap,
		})
	}
	return records, nil
}

// GetCoin はコインIDが存在するかを確認し、コインの基本情報を返します。
func (c *CoinPaprikaMarket) GetCoin(ctx context.Context, id string) (entity.Coin, error) {
	u := fmt.Sprintf("%s/coins/%s", c.cfg.BaseURL, url.PathEscape(id))

	var body dto.CoinResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return entity.Coin{}, err
	}
	if body.ID == "" {
		return entity.Coin{}, fmt.Errorf("coinpaprika: coin %q not found", id)
	}
	return entity.Coin{ID: body.ID, Name: body.Name, Symbol: body.Symbol}, nil
}

// getJSON はGETリクエストを実行し、レスポンスボディを out にデコードします。
func (c *CoinPaprikaMarket) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", c.cfg.APIKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("coinpaprika http %d: %s", res.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("coinpaprika http %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
