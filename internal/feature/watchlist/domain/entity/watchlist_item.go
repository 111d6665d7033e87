// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistItem represents one symbol a user is tracking.
// A symbol can appear at most once per user; SortKey controls display order.
type WatchlistItem struct {
	ID          uint                `gorm:"primaryKey"`
	UserID      uint                `gorm:"not null;uniqueIndex:watch_user_symbol"`
	Symbol      string              `gorm:"size:20;not null;uniqueIndex:watch_user_symbol"`
	Note        string              `gorm:"size:500"`
	TargetPrice decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	SortKey     int                 `gorm:"not null;default:0"`
	IsActive    bool                `gorm:"not null;default:true"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
