package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_backend/internal/feature/assistant/transport/http/dto"
	jwtmw "journal_backend/internal/platform/jwt"
)

// mockAssistantUsecase はテスト用のAssistantUsecaseモック実装です。
type mockAssistantUsecase struct {
	chatFn func(ctx context.Context, userID uint, message string) (string, error)
}

func (m *mockAssistantUsecase) Chat(ctx context.Context, userID uint, message string) (string, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, userID, message)
	}
	return "model reply", nil
}

func fakeAuth(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uid)
		c.Next()
	}
}

func setupAssistantRouter(uc AssistantUsecase, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAssistantHandler(uc)
	r := gin.New()
	g := r.Group("/", mw...)
	g.POST("/assistant/chat", h.Chat)
	return r
}

// TestAssistantChat はメッセージがユースケースへ渡り、応答が返ることを検証します。
func TestAssistantChat(t *testing.T) {
	uc := &mockAssistantUsecase{
		chatFn: func(ctx context.Context, userID uint, message string) (string, error) {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, "How am I doing?", message)
			return "You are up 150 overall.", nil
		},
	}
	r := setupAssistantRouter(uc, fakeAuth(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{"message":"How am I doing?"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "You are up 150 overall.", resp.Reply)
}

// TestAssistantChat_RequiresAuth はユーザーIDなしで401を返すことを検証します。
func TestAssistantChat_RequiresAuth(t *testing.T) {
	r := setupAssistantRouter(&mockAssistantUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAssistantChat_Validation はメッセージ欠落時に400を返すことを検証します。
func TestAssistantChat_Validation(t *testing.T) {
	r := setupAssistantRouter(&mockAssistantUsecase{}, fakeAuth(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestAssistantChat_UsecaseError はユースケースのエラーで502を返すことを検証します。
func TestAssistantChat_UsecaseError(t *testing.T) {
	uc := &mockAssistantUsecase{
		chatFn: func(ctx context.Context, userID uint, message string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	r := setupAssistantRouter(uc, fakeAuth(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
