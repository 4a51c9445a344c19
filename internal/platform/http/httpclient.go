// Package http builds the outbound HTTP client used by the market data adapters.
package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

// UserAgent identifies coinstats to upstream APIs.
const UserAgent = "coinstats/1.0"

// NewHTTPClient は外部API呼び出し用のHTTPクライアントを作成します。
//
// 接続先は単一ホストなので、ホストごとのアイドル接続を多めに保持します。
// proxy が有効なURLならそれを、空または不正なら環境変数（HTTP_PROXY など）を使います。
// 全リクエストに User-Agent を付与します。timeout はリクエスト全体の上限です。
func NewHTTPClient(timeout time.Duration, proxy string) *http.Client {
	base := &http.Transport{
		Proxy: proxyFunc(proxy),
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: base},
	}
}

func proxyFunc(proxy string) func(*http.Request) (*url.URL, error) {
	if proxy == "" {
		return http.ProxyFromEnvironment
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil || proxyURL.Host == "" {
		slog.Warn("invalid proxy url, falling back to environment", "proxy", proxy, "error", err)
		return http.ProxyFromEnvironment
	}
	return http.ProxyURL(proxyURL)
}

// userAgentTransport sets User-Agent on requests that do not carry one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	// RoundTripper はリクエストを変更してはならないので複製する
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	return t.base.RoundTrip(r)
}
