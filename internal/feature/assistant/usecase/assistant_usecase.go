// Package usecase はassistantフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	journalusecase "journal_backend/internal/feature/journal/usecase"
)

const (
	// MaxMessageLength は1メッセージの最大文字数（rune数）です。
	MaxMessageLength = 2000

	// chatPromptTemplate はユーザーの成績サマリーを文脈として与える
	// トレーディングコーチのプロンプトです。
	chatPromptTemplate = `You are a trading journal assistant. Answer the trader's question
using their performance summary below. Be specific, reference their numbers, and keep the
answer under 200 words. Never give financial advice to buy or sell a specific security.

Performance summary:
%s

Question: %s`
)

// ChatModel は応答を生成する言語モデルのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChatModel interface {
	// Generate はプロンプトから応答テキストを生成します。
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalyticsProvider はユーザーの成績サマリーを提供します。
type AnalyticsProvider interface {
	Summary(ctx context.Context, userID uint) (*journalusecase.AnalyticsSummary, error)
}

// assistantUsecase はジャーナルの成績を文脈にしたチャットを提供します。
type assistantUsecase struct {
	model     ChatModel
	analytics AnalyticsProvider
}

// NewAssistantUsecase はassistantUsecaseの新しいインスタンスを生成します。
func NewAssistantUsecase(model ChatModel, analytics AnalyticsProvider) *assistantUsecase {
	return &assistantUsecase{model: model, analytics: analytics}
}

// Chat はユーザーの成績サマリーを文脈としてメッセージに応答します。
func (u *assistantUsecase) Chat(ctx context.Context, userID uint, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}

	summary, err := u.analytics.Summary(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load performance summary: %w", err)
	}

	prompt := fmt.Sprintf(chatPromptTemplate, formatSummary(summary), message)
	reply, err := u.model.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat model failed: %w", err)
	}
	return reply, nil
}

// formatSummary は成績サマリーをプロンプト用の平文に整形します。
func formatSummary(s *journalusecase.AnalyticsSummary) string {
	if s == nil || s.TradeCount == 0 {
		return "No closed trades yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Closed trades: %d (wins: %d, losses: %d, win rate: %.1f%%)\n",
		s.TradeCount, s.WinCount, s.LossCount, s.WinRate)
	fmt.Fprintf(&b, "Total realized P&L: %s\n", s.TotalPnL.StringFixed(2))
	fmt.Fprintf(&b, "Average win: %s, average loss: %s\n",
		s.AvgWin.StringFixed(2), s.AvgLoss.StringFixed(2))
	if s.BestDay != nil {
		fmt.Fprintf(&b, "Best day: %s (%s)\n", s.BestDay.Date, s.BestDay.PnL.StringFixed(2))
	}
	if s.WorstDay != nil {
		fmt.Fprintf(&b, "Worst day: %s (%s)\n", s.WorstDay.Date, s.WorstDay.PnL.StringFixed(2))
	}
	if s.FirstDate != "" {
		fmt.Fprintf(&b, "Trading period: %s to %s\n", s.FirstDate, s.LastDate)
	}
	return b.String()
}
