package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"coinstats/internal/feature/prices/domain/entity"
	priceshandler "coinstats/internal/feature/prices/transport/handler"
	"coinstats/internal/platform/http/handler"
)

type stubPrices struct{}

func (stubPrices) MonthlyAverages(ctx context.Context, coin string, r entity.DateRange) (entity.MonthlyAverage, error) {
	return entity.MonthlyAverage{}, nil
}

func (stubPrices) LongestIncrease(ctx context.Context, coin string, r entity.DateRange) (entity.IncreaseRun, error) {
	return entity.IncreaseRun{StartDate: r.Start, EndDate: r.Start, Length: 1}, nil
}

func (stubPrices) History(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error) {
	return nil, nil
}

func TestNewRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	today := func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	r := NewRouter(handler.NewHealthHandler("none", nil), priceshandler.NewPricesHandler(stubPrices{}, nil, today), false)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/coins/btc-bitcoin/monthly-averages?start=2024-01&end=2024-02", http.StatusOK},
		{http.MethodGet, "/coins/btc-bitcoin/longest-increase?start=2024-01-01&end=2024-01-31", http.StatusOK},
		{http.MethodGet, "/coins/btc-bitcoin/history?start=2024-01-01&end=2024-01-31", http.StatusOK},
		{http.MethodGet, "/coins/btc-bitcoin/history", http.StatusBadRequest},
		{http.MethodGet, "/candles/7203.T", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	today := func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	health := handler.NewHealthHandler("none", nil)
	prices := priceshandler.NewPricesHandler(stubPrices{}, nil, today)

	for _, allow := range []bool{true, false} {
		r := NewRouter(health, prices, allow)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://dashboard.example")
		r.ServeHTTP(w, req)

		if allow {
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		}
	}
}
