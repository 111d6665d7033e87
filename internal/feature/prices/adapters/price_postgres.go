// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_backend/internal/feature/prices/domain/entity"
	"journal_backend/internal/feature/prices/usecase"
)

type pricePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*pricePostgres)(nil)

// NewPriceRepository は指定されたDB接続でpricePostgresの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

// PriceModel is the GORM model backing the historical_prices table.
type PriceModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:20;not null;uniqueIndex:price_sym_rng_int_time,priority:1"`
	Range    string    `gorm:"column:time_range;size:10;not null;uniqueIndex:price_sym_rng_int_time,priority:2"`
	Interval string    `gorm:"size:10;not null;uniqueIndex:price_sym_rng_int_time,priority:3"`
	Time     time.Time `gorm:"not null;uniqueIndex:price_sym_rng_int_time,priority:4"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (PriceModel) TableName() string {
	return "historical_prices"
}

func toModel(e entity.PriceBar) PriceModel {
	return PriceModel{
		Symbol:   e.Symbol,
		Range:    e.Range,
		Interval: e.Interval,
		Time:     e.Time,
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func toEntity(m PriceModel) entity.PriceBar {
	return entity.PriceBar{
		Symbol:   m.Symbol,
		Range:    m.Range,
		Interval: m.Interval,
		Time:     m.Time,
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		Volume:   m.Volume,
	}
}

// UpsertBatch は (symbol, range, interval, time) をキーに一括で挿入または更新します。
func (r *pricePostgres) UpsertBatch(ctx context.Context, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"}, {Name: "time_range"}, {Name: "interval"}, {Name: "time"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// Exists は指定バケットにバーが1件以上存在するか返します。
func (r *pricePostgres) Exists(ctx context.Context, symbol, rng, interval string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&PriceModel{}).
		Where("symbol = ? AND time_range = ? AND \"interval\" = ?", symbol, rng, interval).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Find は指定バケットのバーを新しい順に返します。
func (r *pricePostgres) Find(ctx context.Context, symbol, rng, interval string, limit int) ([]entity.PriceBar, error) {
	var rows []PriceModel
	q := r.db.WithContext(ctx).
		Where("symbol = ? AND time_range = ? AND \"interval\" = ?", symbol, rng, interval).
		Order("\"time\" DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
