package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/feature/journal/usecase"
)

// AnalyticsUsecase はハンドラーが必要とする集計操作を定義します。
type AnalyticsUsecase interface {
	Summary(ctx context.Context, userID uint) (*usecase.AnalyticsSummary, error)
}

// AnalyticsHandler は実現損益サマリーのエンドポイントを扱います。
type AnalyticsHandler struct {
	usecase AnalyticsUsecase
}

// NewAnalyticsHandler は新しい AnalyticsHandler を作成します。
func NewAnalyticsHandler(u AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{usecase: u}
}

// Summary は GET /analytics/summary を処理します。
// クローズ済みトレードの合計損益・勝率・日次バケットを返します。
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.usecase.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
