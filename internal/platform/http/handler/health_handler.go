// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は疎通確認ができる依存先です。キャッシュストアが実装します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	backend string
	cache   Pinger
}

// NewHealthHandler は HealthHandler を生成します。cache が nil の場合は疎通確認を省略します。
func NewHealthHandler(backend string, cache Pinger) *HealthHandler {
	if backend == "" {
		backend = "none"
	}
	return &HealthHandler{backend: backend, cache: cache}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// キャッシュに到達できない場合も取得自体は可能なので、503 と status "degraded" を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, code := "ok", http.StatusOK
	body := gin.H{"cache": h.backend}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
			body["error"] = err.Error()
		}
	}
	body["status"] = status

	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	c.JSON(code, body)
}
