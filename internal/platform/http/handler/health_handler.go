// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は /healthz エンドポイントを処理します。
// 監視系はGETのほかHEAD/OPTIONSでも叩いてくるため、メソッドごとに応答を分けます。
func Health(c *gin.Context) {
	// ロードバランサーにキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
