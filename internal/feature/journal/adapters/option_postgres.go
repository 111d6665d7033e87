package adapters

import (
	"context"

	"gorm.io/gorm"

	"journal_backend/internal/feature/journal/domain/entity"
	"journal_backend/internal/feature/journal/usecase"
)

// optionPostgres はOptionRepositoryインターフェースのPostgres実装です。
type optionPostgres struct {
	db *gorm.DB
}

var _ usecase.OptionRepository = (*optionPostgres)(nil)

// NewOptionRepository は指定されたDB接続でoptionPostgresの新しいインスタンスを生成します。
func NewOptionRepository(db *gorm.DB) *optionPostgres {
	return &optionPostgres{db: db}
}

// List はユーザーのオプショントレードを建日の新しい順に返します。
func (r *optionPostgres) List(ctx context.Context, userID uint) ([]entity.OptionTrade, error) {
	var trades []entity.OptionTrade
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// Create はオプショントレードを作成します。
func (r *optionPostgres) Create(ctx context.Context, t *entity.OptionTrade) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update はオプショントレードを更新します。対象が存在しない場合はErrTradeNotFoundを返します。
func (r *optionPostgres) Update(ctx context.Context, t *entity.OptionTrade) error {
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

// Delete はオプショントレードを削除します。対象が存在しない場合はErrTradeNotFoundを返します。
func (r *optionPostgres) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&entity.OptionTrade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTradeNotFound
	}
	return nil
}
