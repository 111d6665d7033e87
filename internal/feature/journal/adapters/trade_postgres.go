// Package adapters はjournalフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"journal_backend/internal/feature/journal/domain/entity"
	"journal_backend/internal/feature/journal/usecase"
)

// tradePostgres はTradeRepositoryインターフェースのPostgres実装です。
type tradePostgres struct {
	db *gorm.DB
}

var _ usecase.TradeRepository = (*tradePostgres)(nil)

// NewTradeRepository は指定されたDB接続でtradePostgresの新しいインスタンスを生成します。
func NewTradeRepository(db *gorm.DB) *tradePostgres {
	return &tradePostgres{db: db}
}

// List はユーザーの株式トレードを建日の新しい順に返します。
func (r *tradePostgres) List(ctx context.Context, userID uint) ([]entity.StockTrade, error) {
	var trades []entity.StockTrade
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// FindByIDs は指定IDのトレードを返します。他ユーザーのトレードは含まれません。
func (r *tradePostgres) FindByIDs(ctx context.Context, userID uint, ids []uint) ([]entity.StockTrade, error) {
	var trades []entity.StockTrade
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// Create は株式トレードを作成します。
func (r *tradePostgres) Create(ctx context.Context, t *entity.StockTrade) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update は株式トレードを更新します。対象が存在しない場合はErrTradeNotFoundを返します。
func (r *tradePostgres) Update(ctx context.Context, t *entity.StockTrade) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", t.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTradeNotFound
	}
	return nil
}

// Delete は株式トレードを削除します。対象が存在しない場合はErrTradeNotFoundを返します。
func (r *tradePostgres) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&entity.StockTrade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTradeNotFound
	}
	return nil
}

// Replace は元トレードの削除とマージ済みトレードの作成を1トランザクションで行います。
// 削除件数がremoveIDsと一致しない場合はロールバックします。
func (r *tradePostgres) Replace(ctx context.Context, merged *entity.StockTrade, removeIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id IN ?", merged.UserID, removeIDs).
			Delete(&entity.StockTrade{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(removeIDs)) {
			return usecase.ErrTradeNotFound
		}
		return tx.Create(merged).Error
	})
}
