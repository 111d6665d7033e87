// Package entity はtradescanフィーチャーのドメインモデルを定義します。
package entity

import "github.com/shopspring/decimal"

// TradeDraft は約定スクリーンショットから抽出したトレードの下書きです。
// ユーザーが確認・修正してからジャーナルに登録する前提の中間表現で、
// 日付は抽出元の表記ゆれを吸収するため "2006-01-02" の文字列で保持します。
type TradeDraft struct {
	Symbol     string              `json:"symbol"`
	Side       string              `json:"side"`
	Quantity   decimal.Decimal     `json:"quantity"`
	EntryPrice decimal.Decimal     `json:"entryPrice"`
	ExitPrice  decimal.NullDecimal `json:"exitPrice"`
	EntryDate  string              `json:"entryDate"`
	ExitDate   string              `json:"exitDate,omitempty"`
}
