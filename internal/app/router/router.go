// Package router はアプリケーションの全HTTPルートを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	assistanthandler "journal_backend/internal/feature/assistant/transport/handler"
	authhandler "journal_backend/internal/feature/auth/transport/handler"
	companyhandler "journal_backend/internal/feature/companyinfo/transport/handler"
	journalhandler "journal_backend/internal/feature/journal/transport/handler"
	pricehandler "journal_backend/internal/feature/prices/transport/handler"
	tradescanhandler "journal_backend/internal/feature/tradescan/transport/handler"
	watchlisthandler "journal_backend/internal/feature/watchlist/transport/handler"
	httphandler "journal_backend/internal/platform/http/handler"
	jwtmw "journal_backend/internal/platform/jwt"
)

// Handlers は各フィーチャーのHTTPハンドラーの束です。
// AssistantとTradescanはGoogle Cloudの認証情報が無い環境ではnilになり、
// その場合ルートを登録しません。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Trades    *journalhandler.TradeHandler
	Analytics *journalhandler.AnalyticsHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Company   *companyhandler.CompanyHandler
	Prices    *pricehandler.PriceHandler
	Assistant *assistanthandler.AssistantHandler
	Tradescan *tradescanhandler.TradescanHandler
}

// NewRouter はCORS・ヘルスチェック・全APIルートを設定したginエンジンを返します。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 全オリジン許可（ブラウザのローカル開発ツールからの直接アクセスを想定）
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", httphandler.Health)
	r.HEAD("/healthz", httphandler.Health)

	v1 := r.Group("/api/v1")

	// 新規ユーザー登録・ログイン・トークン更新
	v1.POST("/signup", h.Auth.Signup)
	v1.POST("/login", h.Auth.Login)
	v1.POST("/refresh", h.Auth.Refresh)
	v1.POST("/logout", h.Auth.Logout)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := v1.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		// 株式トレードCRUDとマージ
		auth.GET("/trades", h.Trades.ListStocks)
		auth.POST("/trades", h.Trades.CreateStock)
		auth.PUT("/trades/:id", h.Trades.UpdateStock)
		auth.DELETE("/trades/:id", h.Trades.DeleteStock)
		auth.POST("/trades/merge", h.Trades.MergeStocks)

		// オプショントレードCRUD
		auth.GET("/options", h.Trades.ListOptions)
		auth.POST("/options", h.Trades.CreateOption)
		auth.PUT("/options/:id", h.Trades.UpdateOption)
		auth.DELETE("/options/:id", h.Trades.DeleteOption)

		// 集計
		auth.GET("/analytics/summary", h.Analytics.Summary)

		// ウォッチリスト
		auth.GET("/watchlist", h.Watchlist.List)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.PUT("/watchlist/:id", h.Watchlist.Update)
		auth.DELETE("/watchlist/:id", h.Watchlist.Remove)

		// 企業情報の参照と同期
		auth.GET("/companies/:symbol", h.Company.Get)
		auth.POST("/companies/sync", h.Company.Sync)

		// 時系列株価の参照と取り込み
		auth.GET("/prices/:symbol", h.Prices.GetPrices)
		auth.POST("/prices/sync", h.Prices.Sync)

		// Google Cloud依存のルートは構築できた場合のみ登録
		if h.Assistant != nil {
			auth.POST("/assistant/chat", h.Assistant.Chat)
		}
		if h.Tradescan != nil {
			auth.POST("/trades/scan", h.Tradescan.Scan)
		}
	}

	return r
}
