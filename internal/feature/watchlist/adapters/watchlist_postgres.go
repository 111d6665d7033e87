// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"journal_backend/internal/feature/watchlist/domain/entity"
	"journal_backend/internal/feature/watchlist/usecase"
)

// uniqueViolation はPostgresの一意制約違反のSQLSTATEコードです。
const uniqueViolation = "23505"

// watchlistPostgres はWatchlistRepositoryインターフェースのPostgres実装です。
type watchlistPostgres struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistPostgresの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// ListActive はsort_key順にユーザーのアクティブなウォッチリスト項目を返します。
func (r *watchlistPostgres) ListActive(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("sort_key ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create は項目を作成します。(user_id, symbol)の一意制約違反はErrDuplicateSymbolにマップします。
func (r *watchlistPostgres) Create(ctx context.Context, item *entity.WatchlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrDuplicateSymbol
		}
		// SQLite（テスト環境）はpgconnを経由しないため、GORM側の重複エラーも拾う
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDuplicateSymbol
		}
		return err
	}
	return nil
}

// Update は項目を更新します。対象が存在しない場合はErrItemNotFoundを返します。
func (r *watchlistPostgres) Update(ctx context.Context, item *entity.WatchlistItem) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", item.UserID).
		Select("*").
		Omit("id", "user_id").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}

// Delete は項目を削除します。対象が存在しない場合はErrItemNotFoundを返します。
func (r *watchlistPostgres) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&entity.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}
