// Package dto はjournalフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// 金額はdecimal（JSONでは文字列）、日付はOpenAPIのdate形式（"2006-01-02"）で受け渡します。
package dto

import (
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// StockTradeRequest is the request body for creating or updating a stock trade.
type StockTradeRequest struct {
	Symbol     string           `json:"symbol" binding:"required"`
	Side       string           `json:"side" binding:"required,oneof=long short"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	EntryPrice decimal.Decimal  `json:"entryPrice" binding:"required"`
	ExitPrice  *decimal.Decimal `json:"exitPrice"`
	EntryDate  types.Date       `json:"entryDate" binding:"required"`
	ExitDate   *types.Date      `json:"exitDate"`
	Fees       decimal.Decimal  `json:"fees"`
	Notes      string           `json:"notes"`
}

// StockTradeResponse is one stock trade in API responses.
type StockTradeResponse struct {
	ID         uint             `json:"id"`
	Symbol     string           `json:"symbol"`
	Side       string           `json:"side"`
	Quantity   decimal.Decimal  `json:"quantity"`
	EntryPrice decimal.Decimal  `json:"entryPrice"`
	ExitPrice  *decimal.Decimal `json:"exitPrice,omitempty"`
	EntryDate  types.Date       `json:"entryDate"`
	ExitDate   *types.Date      `json:"exitDate,omitempty"`
	Fees       decimal.Decimal  `json:"fees"`
	Notes      string           `json:"notes,omitempty"`
	Status     string           `json:"status"`
	PnL        decimal.Decimal  `json:"pnl"`
}

// OptionTradeRequest is the request body for creating or updating an option trade.
type OptionTradeRequest struct {
	Symbol     string           `json:"symbol" binding:"required"`
	Side       string           `json:"side" binding:"required,oneof=long short"`
	OptionType string           `json:"optionType" binding:"required,oneof=call put"`
	Strike     decimal.Decimal  `json:"strike" binding:"required"`
	Expiration types.Date       `json:"expiration" binding:"required"`
	Contracts  int64            `json:"contracts" binding:"required,gt=0"`
	EntryPrice decimal.Decimal  `json:"entryPrice" binding:"required"`
	ExitPrice  *decimal.Decimal `json:"exitPrice"`
	EntryDate  types.Date       `json:"entryDate" binding:"required"`
	ExitDate   *types.Date      `json:"exitDate"`
	Fees       decimal.Decimal  `json:"fees"`
	Notes      string           `json:"notes"`
}

// OptionTradeResponse is one option trade in API responses.
type OptionTradeResponse struct {
	ID         uint             `json:"id"`
	Symbol     string           `json:"symbol"`
	Side       string           `json:"side"`
	OptionType string           `json:"optionType"`
	Strike     decimal.Decimal  `json:"strike"`
	Expiration types.Date       `json:"expiration"`
	Contracts  int64            `json:"contracts"`
	EntryPrice decimal.Decimal  `json:"entryPrice"`
	ExitPrice  *decimal.Decimal `json:"exitPrice,omitempty"`
	EntryDate  types.Date       `json:"entryDate"`
	ExitDate   *types.Date      `json:"exitDate,omitempty"`
	Fees       decimal.Decimal  `json:"fees"`
	Notes      string           `json:"notes,omitempty"`
	Status     string           `json:"status"`
	PnL        decimal.Decimal  `json:"pnl"`
}

// MergeRequest is the request body for POST /trades/merge.
type MergeRequest struct {
	TradeIDs []uint `json:"tradeIds" binding:"required,min=2"`
}
