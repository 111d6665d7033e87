// Package handler はtradescanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/tradescan/domain/entity"
)

// TradescanUsecase はスクリーンショット取り込みのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TradescanUsecase interface {
	ScanImage(ctx context.Context, imageData []byte) ([]entity.TradeDraft, error)
}

// TradescanHandler は約定スクリーンショットのアップロードを処理します。
type TradescanHandler struct {
	uc TradescanUsecase
}

// NewTradescanHandler はTradescanHandlerの新しいインスタンスを生成します。
func NewTradescanHandler(uc TradescanUsecase) *TradescanHandler {
	return &TradescanHandler{uc: uc}
}

// Scan は約定スクリーンショットからトレードの下書きを抽出します。
//
// エンドポイント: POST /trades/scan
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *TradescanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	drafts, err := h.uc.ScanImage(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("スクリーンショット解析に失敗", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to scan screenshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trades": drafts})
}
