package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTextExtractor はテスト用のTextExtractorモック実装です。
type mockTextExtractor struct {
	extractFn func(ctx context.Context, imageData []byte) (string, error)
}

func (m *mockTextExtractor) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if m.extractFn != nil {
		return m.extractFn(ctx, imageData)
	}
	return "BUY 10 AAPL @ 150.00", nil
}

// mockTradeStructurer はテスト用のTradeStructurerモック実装です。
type mockTradeStructurer struct {
	structureFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockTradeStructurer) Structure(ctx context.Context, prompt string) (string, error) {
	if m.structureFn != nil {
		return m.structureFn(ctx, prompt)
	}
	return "[]", nil
}

// TestScanImage はOCRテキストが構造化されて下書きになることを検証します。
func TestScanImage(t *testing.T) {
	t.Parallel()

	structurer := &mockTradeStructurer{
		structureFn: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "BUY 10 AAPL @ 150.00")
			return `[{"symbol":"aapl","side":"long","quantity":10,"entryPrice":150,"entryDate":"2026-08-03"}]`, nil
		},
	}
	uc := NewTradescanUsecase(&mockTextExtractor{}, structurer)

	drafts, err := uc.ScanImage(context.Background(), []byte("fake-png"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "AAPL", drafts[0].Symbol, "symbol should be uppercased")
	assert.Equal(t, "long", drafts[0].Side)
	assert.True(t, decimal.NewFromInt(10).Equal(drafts[0].Quantity))
	assert.False(t, drafts[0].ExitPrice.Valid)
}

// TestScanImage_ImageValidation は空画像とサイズ超過の拒否を検証します。
func TestScanImage_ImageValidation(t *testing.T) {
	t.Parallel()

	uc := NewTradescanUsecase(&mockTextExtractor{}, &mockTradeStructurer{})

	_, err := uc.ScanImage(context.Background(), nil)
	assert.Error(t, err)

	_, err = uc.ScanImage(context.Background(), make([]byte, MaxImageSize+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

// TestScanImage_NoText はOCR結果が空のときにエラーを返すことを検証します。
func TestScanImage_NoText(t *testing.T) {
	t.Parallel()

	extractor := &mockTextExtractor{
		extractFn: func(ctx context.Context, imageData []byte) (string, error) {
			return "   \n", nil
		},
	}
	uc := NewTradescanUsecase(extractor, &mockTradeStructurer{})

	_, err := uc.ScanImage(context.Background(), []byte("fake-png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text found")
}

// TestScanImage_DependencyErrors は依存先のエラーがラップされることを検証します。
func TestScanImage_DependencyErrors(t *testing.T) {
	t.Parallel()

	extractor := &mockTextExtractor{
		extractFn: func(ctx context.Context, imageData []byte) (string, error) {
			return "", errors.New("vision api down")
		},
	}
	uc := NewTradescanUsecase(extractor, &mockTradeStructurer{})
	_, err := uc.ScanImage(context.Background(), []byte("fake-png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text extraction failed")

	structurer := &mockTradeStructurer{
		structureFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	uc = NewTradescanUsecase(&mockTextExtractor{}, structurer)
	_, err = uc.ScanImage(context.Background(), []byte("fake-png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade structuring failed")
}

// TestParseDrafts はコードフェンスの除去と不正な下書きのフィルタリングを検証します。
func TestParseDrafts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{
			name: "markdown code fence",
			raw: "```json\n" +
				`[{"symbol":"MSFT","side":"short","quantity":5,"entryPrice":400,"entryDate":"2026-08-03"}]` +
				"\n```",
			wantLen: 1,
		},
		{
			name: "bare fence",
			raw: "```\n" +
				`[{"symbol":"MSFT","side":"long","quantity":5,"entryPrice":400,"entryDate":"2026-08-03"}]` +
				"\n```",
			wantLen: 1,
		},
		{
			name:    "filters invalid drafts",
			raw:     `[{"symbol":"","quantity":5,"entryPrice":400},{"symbol":"AAPL","quantity":0,"entryPrice":400},{"symbol":"AAPL","quantity":5,"entryPrice":0},{"symbol":"AAPL","side":"long","quantity":5,"entryPrice":400}]`,
			wantLen: 1,
		},
		{
			name:    "empty array",
			raw:     "[]",
			wantLen: 0,
		},
		{
			name:    "not json",
			raw:     "I could not find any trades.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			drafts, err := parseDrafts(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, drafts, tt.wantLen)
		})
	}
}

// TestParseDrafts_DefaultsSide は不明なsideがlongに正規化されることを検証します。
func TestParseDrafts_DefaultsSide(t *testing.T) {
	t.Parallel()

	drafts, err := parseDrafts(`[{"symbol":"AAPL","side":"buy","quantity":5,"entryPrice":100,"entryDate":"2026-08-03"}]`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "long", drafts[0].Side)
}
