// Package http は外部API呼び出しで共有するHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はベンダーAPIクライアント用に設定されたHTTPクライアントを作成します。
//
// http.DefaultClientにはタイムアウトがないため使いません。Transportを明示し、
// 取り込みジョブが多数の銘柄を順に叩いてもアイドル接続を使い回せるようにします。
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConns / IdleConnTimeout: アイドル接続の上限と維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
