// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import "github.com/shopspring/decimal"

// WatchlistItemRequest is the request body for adding or updating a watchlist item.
type WatchlistItemRequest struct {
	Symbol      string           `json:"symbol" binding:"required"`
	Note        string           `json:"note"`
	TargetPrice *decimal.Decimal `json:"targetPrice"`
	SortKey     int              `json:"sortKey"`
}

// WatchlistItemResponse represents a watchlist item in the API response.
type WatchlistItemResponse struct {
	ID          uint             `json:"id"`
	Symbol      string           `json:"symbol"`
	Note        string           `json:"note,omitempty"`
	TargetPrice *decimal.Decimal `json:"targetPrice,omitempty"`
	SortKey     int              `json:"sortKey"`
}
