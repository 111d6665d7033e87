// Package usecase implements the business logic for watchlist operations.
package usecase

import (
	"context"
	"errors"
	"strings"

	"journal_backend/internal/feature/watchlist/domain/entity"
)

var (
	// ErrItemNotFound は指定されたウォッチリスト項目が存在しないことを示します。
	ErrItemNotFound = errors.New("watchlist item not found")
	// ErrDuplicateSymbol は同一ユーザーが同じ銘柄を二重登録したことを示します。
	ErrDuplicateSymbol = errors.New("symbol already on watchlist")
	// ErrEmptySymbol は銘柄コードが空であることを示します。
	ErrEmptySymbol = errors.New("symbol is required")
)

// WatchlistRepository abstracts the persistence layer for watchlist data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	ListActive(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
	Create(ctx context.Context, item *entity.WatchlistItem) error
	Update(ctx context.Context, item *entity.WatchlistItem) error
	Delete(ctx context.Context, userID, id uint) error
}

// WatchlistUsecase provides business logic for watchlist operations.
type WatchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given repository.
func NewWatchlistUsecase(r WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r}
}

// ListItems returns the user's active watchlist items in sort order.
func (u *WatchlistUsecase) ListItems(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	return u.repo.ListActive(ctx, userID)
}

// AddItem registers a new symbol on the user's watchlist.
// 銘柄コードは大文字に正規化して保存します。
func (u *WatchlistUsecase) AddItem(ctx context.Context, item *entity.WatchlistItem) error {
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Symbol == "" {
		return ErrEmptySymbol
	}
	item.IsActive = true
	return u.repo.Create(ctx, item)
}

// UpdateItem updates the note, target price, and sort key of an item.
func (u *WatchlistUsecase) UpdateItem(ctx context.Context, item *entity.WatchlistItem) error {
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Symbol == "" {
		return ErrEmptySymbol
	}
	return u.repo.Update(ctx, item)
}

// RemoveItem deletes an item from the user's watchlist.
func (u *WatchlistUsecase) RemoveItem(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}
