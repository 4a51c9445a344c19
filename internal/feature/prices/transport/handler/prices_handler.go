// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coinstats/internal/feature/prices/adapters/export"
	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/feature/prices/transport/http/dto"
	"coinstats/internal/feature/prices/usecase"
)

// PricesUsecase は価格分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	MonthlyAverages(ctx context.Context, coin string, r entity.DateRange) (entity.MonthlyAverage, error)
	LongestIncrease(ctx context.Context, coin string, r entity.DateRange) (entity.IncreaseRun, error)
	History(ctx context.Context, coin string, r entity.DateRange) ([]entity.PriceRecord, error)
}

// CoinResolver はコインIDを検証し、見つからない場合はデフォルトのコインを返します。
type CoinResolver interface {
	ResolveCoin(ctx context.Context, coin string) string
}

var (
	_ PricesUsecase = (*usecase.StatsUsecase)(nil)
	_ CoinResolver  = (*usecase.HistoryUsecase)(nil)
)

// CoinHeader は実際に集計に使われたコインIDを返すレスポンスヘッダーです。
const CoinHeader = "X-Coin"

// PricesHandler は価格分析のHTTPリクエストを処理します。
type PricesHandler struct {
	uc    PricesUsecase
	coins CoinResolver
	now   func() time.Time
}

// NewPricesHandler は指定されたusecaseでPricesHandlerの新しいインスタンスを生成します。
// coins が nil の場合はパスのコインIDをそのまま使い、now が nil の場合は time.Now を使用します。
func NewPricesHandler(uc PricesUsecase, coins CoinResolver, now func() time.Time) *PricesHandler {
	if now == nil {
		now = time.Now
	}
	return &PricesHandler{uc: uc, coins: coins, now: now}
}

// MonthlyAverages は月ごとの終値平均を返します。
//
// エンドポイント例:
// GET /coins/btc-bitcoin/monthly-averages?start=2023-01&end=2023-06
func (h *PricesHandler) MonthlyAverages(c *gin.Context) {
	coin, r, ok := h.parseRequest(c)
	if !ok {
		return
	}

	months, err := h.uc.MonthlyAverages(c.Request.Context(), coin, r)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.MonthAverageResponse, 0, len(months))
	for _, m := range months {
		res := dto.MonthAverageResponse{Month: m.Month}
		if m.HasData {
			avg := json.Number(m.Average.String())
			res.Average = &avg
		}
		out = append(out, res)
	}
	c.JSON(http.StatusOK, out)
}

// LongestIncrease は終値が下落しなかった最長区間を返します。
//
// エンドポイント例:
// GET /coins/btc-bitcoin/longest-increase?start=2023-01-01&end=2023-12-31
func (h *PricesHandler) LongestIncrease(c *gin.Context) {
	coin, r, ok := h.parseRequest(c)
	if !ok {
		return
	}

	run, err := h.uc.LongestIncrease(c.Request.Context(), coin, r)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IncreaseResponse{
		From:     run.StartDate.Format(entity.DateLayout),
		To:       run.EndDate.Format(entity.DateLayout),
		Length:   run.Length,
		Increase: json.Number(run.PriceDelta.String()),
	})
}

// History は日付と終値の一覧を返します。エクスポートファイルと同じ形式です。
//
// エンドポイント例:
// GET /coins/eth-ethereum/history?start=2024-01-01&end=2024-01-31
func (h *PricesHandler) History(c *gin.Context) {
	coin, r, ok := h.parseRequest(c)
	if !ok {
		return
	}

	records, err := h.uc.History(c.Request.Context(), coin, r)
	if err != nil {
		h.writeError(c, err)
		return
	}

	rows := export.Rows(records)
	out := make([]dto.PricePointResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PricePointResponse{Date: row.Date, Price: row.Price})
	}
	c.JSON(http.StatusOK, out)
}

// parseRequest はパスとクエリからコインIDと期間を取り出します。
// 不正な期間の場合は 400 を書き込み false を返します。
// 未知のコインはCLIと同じくデフォルトにフォールバックし、使われたIDを CoinHeader で返します。
func (h *PricesHandler) parseRequest(c *gin.Context) (string, entity.DateRange, bool) {
	r, err := usecase.NormalizeDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return "", entity.DateRange{}, false
	}

	coin := strings.ToLower(strings.TrimSpace(c.Param("coin")))
	if h.coins != nil {
		coin = h.coins.ResolveCoin(c.Request.Context(), coin)
	}
	c.Header(CoinHeader, coin)
	return coin, r, true
}

func (h *PricesHandler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
}
