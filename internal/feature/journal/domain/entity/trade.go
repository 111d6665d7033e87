// Package entity defines the domain models for the journal feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade sides.
const (
	SideLong  = "long"
	SideShort = "short"
)

// Trade statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Option types.
const (
	OptionCall = "call"
	OptionPut  = "put"
)

// optionMultiplier is the share count per standard US option contract.
var optionMultiplier = decimal.NewFromInt(100)

// StockTrade represents one journaled stock trade (or a merged position).
// 金額・数量はfloatの丸め誤差を避けるためdecimalで保持します。
type StockTrade struct {
	ID         uint                `gorm:"primaryKey"`
	UserID     uint                `gorm:"not null;index"`
	Symbol     string              `gorm:"size:20;not null;index"`
	Side       string              `gorm:"size:10;not null"`
	Quantity   decimal.Decimal     `gorm:"type:numeric(18,4);not null"`
	EntryPrice decimal.Decimal     `gorm:"type:numeric(18,4);not null"`
	ExitPrice  decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	EntryDate  time.Time           `gorm:"not null"`
	ExitDate   *time.Time
	Fees       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	Notes      string          `gorm:"size:2000"`
	Status     string          `gorm:"size:10;not null;default:'open'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (StockTrade) TableName() string {
	return "stock_trades"
}

// IsClosed reports whether the trade has an exit.
func (t StockTrade) IsClosed() bool {
	return t.Status == StatusClosed && t.ExitPrice.Valid && t.ExitDate != nil
}

// direction returns +1 for long and -1 for short.
func direction(side string) decimal.Decimal {
	if side == SideShort {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// RealizedPnL returns the realized profit and loss of a closed trade,
// net of fees. Open trades return zero.
func (t StockTrade) RealizedPnL() decimal.Decimal {
	if !t.IsClosed() {
		return decimal.Zero
	}
	diff := t.ExitPrice.Decimal.Sub(t.EntryPrice)
	return diff.Mul(t.Quantity).Mul(direction(t.Side)).Sub(t.Fees)
}

// OptionTrade represents one journaled option trade.
type OptionTrade struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Symbol      string          `gorm:"size:20;not null;index"`
	Side        string          `gorm:"size:10;not null"`
	OptionType  string          `gorm:"size:4;not null"`
	Strike      decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Expiration  time.Time       `gorm:"not null"`
	Contracts   int64           `gorm:"not null"`
	EntryPrice  decimal.Decimal `gorm:"type:numeric(18,4);not null"` // premium per share
	ExitPrice   decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	EntryDate   time.Time       `gorm:"not null"`
	ExitDate    *time.Time
	Fees        decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	Notes       string          `gorm:"size:2000"`
	Status      string          `gorm:"size:10;not null;default:'open'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OptionTrade) TableName() string {
	return "option_trades"
}

// IsClosed reports whether the trade has an exit.
func (t OptionTrade) IsClosed() bool {
	return t.Status == StatusClosed && t.ExitPrice.Valid && t.ExitDate != nil
}

// RealizedPnL returns the realized profit and loss of a closed option trade,
// net of fees, using the standard 100-share contract multiplier.
func (t OptionTrade) RealizedPnL() decimal.Decimal {
	if !t.IsClosed() {
		return decimal.Zero
	}
	diff := t.ExitPrice.Decimal.Sub(t.EntryPrice)
	contracts := decimal.NewFromInt(t.Contracts)
	return diff.Mul(contracts).Mul(optionMultiplier).Mul(direction(t.Side)).Sub(t.Fees)
}
