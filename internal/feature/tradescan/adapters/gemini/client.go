// Package gemini はGoogle Gemini APIを使用したテキスト構造化クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"journal_backend/internal/feature/tradescan/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiStructurer はGoogle Gemini APIを使用してOCRテキストを構造化します。
type GeminiStructurer struct {
	client *genai.Client
	model  string
}

// GeminiStructurerがTradeStructurerを実装していることをコンパイル時に検証します。
var _ usecase.TradeStructurer = (*GeminiStructurer)(nil)

// NewGeminiStructurer はADCを使用してGeminiStructurerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiStructurer(ctx context.Context) (*GeminiStructurer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiStructurer{client: client, model: DefaultModel}, nil
}

// Structure はプロンプトからモデルの応答テキストを生成します。
func (g *GeminiStructurer) Structure(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
