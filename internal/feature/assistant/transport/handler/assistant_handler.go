// Package handler はassistantフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/assistant/transport/http/dto"
	jwtmw "journal_backend/internal/platform/jwt"
)

// AssistantUsecase はチャットのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AssistantUsecase interface {
	Chat(ctx context.Context, userID uint, message string) (string, error)
}

// AssistantHandler はアシスタントチャットのHTTPリクエストを処理します。
type AssistantHandler struct {
	uc AssistantUsecase
}

// NewAssistantHandler はAssistantHandlerの新しいインスタンスを生成します。
func NewAssistantHandler(uc AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Chat はユーザーの成績を文脈にした質問応答を行います。
//
// エンドポイント: POST /assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	userID, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "message is required"})
		return
	}

	reply, err := h.uc.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		slog.Error("assistant chat failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "assistant is unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}
