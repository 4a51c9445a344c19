package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	priceshandler "coinstats/internal/feature/prices/transport/handler"
	"coinstats/internal/platform/http/handler"
)

// NewRouter は読み取り専用の価格APIのルートを登録した gin.Engine を返します。
// allowCORS が true の場合、ブラウザのダッシュボードから呼べるよう全オリジンを許可します。
func NewRouter(health *handler.HealthHandler, prices *priceshandler.PricesHandler, allowCORS bool) *gin.Engine {
	r := gin.Default()

	// CORS追加
	if allowCORS {
		r.Use(cors.Default())
	}

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)

	// 価格分析
	coins := r.Group("/coins/:coin")
	{
		coins.GET("/monthly-averages", prices.MonthlyAverages)
		coins.GET("/longest-increase", prices.LongestIncrease)
		coins.GET("/history", prices.History)
	}

	return r
}
