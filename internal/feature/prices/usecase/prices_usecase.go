// Package usecase は時系列株価データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"

	"journal_backend/internal/feature/prices/domain/entity"
)

const (
	// DefaultRange は株価クエリのデフォルトレンジです。
	DefaultRange = "6mo"
	// DefaultInterval は株価クエリのデフォルト足です。
	DefaultInterval = "1d"
	// DefaultLimit はデフォルトのバー返却件数です。
	DefaultLimit = 200
	// MaxLimit はバーの最大返却件数です。
	MaxLimit = 5000
)

// PriceRepository は時系列株価データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// UpsertBatch はバーを一括で挿入または更新します。
	UpsertBatch(ctx context.Context, bars []entity.PriceBar) error
	// Exists は (symbol, range, interval) バケットにバーが存在するか返します。
	Exists(ctx context.Context, symbol, rng, interval string) (bool, error)
	// Find はデータベースからバーを新しい順に検索します。
	Find(ctx context.Context, symbol, rng, interval string, limit int) ([]entity.PriceBar, error)
}

// pricesUsecase は株価データ読み取りのユースケースを定義します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// GetPrices は指定された銘柄・レンジ・足のバーを取得します。
func (pu *pricesUsecase) GetPrices(ctx context.Context, symbol, rng, interval string, limit int) ([]entity.PriceBar, error) {
	if rng == "" {
		rng = DefaultRange
	}
	if interval == "" {
		interval = DefaultInterval
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	bars, err := pu.prices.Find(ctx, symbol, rng, interval, limit)
	if err != nil {
		return nil, err
	}

	return bars, nil
}
