// Package gemini はGoogle Gemini APIを使用したチャットクライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"journal_backend/internal/feature/assistant/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiChat はGoogle Gemini APIを使用して応答を生成します。
type GeminiChat struct {
	client *genai.Client
	model  string
}

// GeminiChatがChatModelを実装していることをコンパイル時に検証します。
var _ usecase.ChatModel = (*GeminiChat)(nil)

// NewGeminiChat はADCを使用してGeminiChatの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiChat(ctx context.Context) (*GeminiChat, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiChat{client: client, model: DefaultModel}, nil
}

// Generate はプロンプトから応答テキストを生成します。
func (g *GeminiChat) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
