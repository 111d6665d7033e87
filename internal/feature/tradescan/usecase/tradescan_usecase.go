// Package usecase はtradescanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"journal_backend/internal/feature/tradescan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024

	// structurePromptTemplate はOCRテキストをトレードの下書きに構造化する
	// プロンプトです。モデルにはJSON配列のみを返すよう指示します。
	structurePromptTemplate = `The following text was extracted from a brokerage trade confirmation screenshot.
Extract every stock trade you can find and return ONLY a JSON array, no prose and no markdown.
Each element must have exactly these fields:
  "symbol" (uppercase ticker), "side" ("long" or "short"),
  "quantity" (number), "entryPrice" (number),
  "exitPrice" (number or null), "entryDate" ("YYYY-MM-DD"),
  "exitDate" ("YYYY-MM-DD" or "").
If a value is unreadable, omit that trade. Text:

%s`
)

// TextExtractor は画像からテキストを抽出するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextExtractor interface {
	// ExtractText は画像バイト列から全テキストを抽出します。
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// TradeStructurer は自由形式テキストを構造化するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TradeStructurer interface {
	// Structure はプロンプトからモデルの応答テキストを生成します。
	Structure(ctx context.Context, prompt string) (string, error)
}

// tradescanUsecase は約定スクリーンショットからトレードの下書きを抽出します。
type tradescanUsecase struct {
	extractor  TextExtractor
	structurer TradeStructurer
}

// NewTradescanUsecase はtradescanUsecaseの新しいインスタンスを生成します。
func NewTradescanUsecase(extractor TextExtractor, structurer TradeStructurer) *tradescanUsecase {
	return &tradescanUsecase{extractor: extractor, structurer: structurer}
}

// ScanImage は画像からOCRでテキストを抽出し、トレードの下書きに構造化します。
func (u *tradescanUsecase) ScanImage(ctx context.Context, imageData []byte) ([]entity.TradeDraft, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	text, err := u.extractor.ExtractText(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text found in image")
	}

	raw, err := u.structurer.Structure(ctx, fmt.Sprintf(structurePromptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("trade structuring failed: %w", err)
	}

	drafts, err := parseDrafts(raw)
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

// parseDrafts はモデル応答からJSON配列を取り出してデコードします。
// 指示に反してmarkdownのコードフェンスが付くことがあるため剥がします。
func parseDrafts(raw string) ([]entity.TradeDraft, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var drafts []entity.TradeDraft
	if err := json.Unmarshal([]byte(s), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse structured trades: %w", err)
	}

	out := make([]entity.TradeDraft, 0, len(drafts))
	for _, d := range drafts {
		d.Symbol = strings.ToUpper(strings.TrimSpace(d.Symbol))
		if d.Symbol == "" || !d.Quantity.IsPositive() || !d.EntryPrice.IsPositive() {
			continue
		}
		if d.Side != "long" && d.Side != "short" {
			d.Side = "long"
		}
		out = append(out, d)
	}
	return out, nil
}
