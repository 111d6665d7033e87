package usecase

import (
	"context"
	"fmt"

	"journal_backend/internal/feature/journal/domain/entity"
)

// TradeRepository は株式トレードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TradeRepository interface {
	List(ctx context.Context, userID uint) ([]entity.StockTrade, error)
	FindByIDs(ctx context.Context, userID uint, ids []uint) ([]entity.StockTrade, error)
	Create(ctx context.Context, trade *entity.StockTrade) error
	Update(ctx context.Context, trade *entity.StockTrade) error
	Delete(ctx context.Context, userID, id uint) error
	// Replace はマージ結果を1トランザクションで反映します:
	// 元トレードを削除し、マージ済みトレードを作成します。
	Replace(ctx context.Context, merged *entity.StockTrade, removeIDs []uint) error
}

// OptionRepository はオプショントレードの永続化層を抽象化します。
type OptionRepository interface {
	List(ctx context.Context, userID uint) ([]entity.OptionTrade, error)
	Create(ctx context.Context, trade *entity.OptionTrade) error
	Update(ctx context.Context, trade *entity.OptionTrade) error
	Delete(ctx context.Context, userID, id uint) error
}

// TradesUsecase はトレードCRUDとマージのユースケースを定義します。
type TradesUsecase struct {
	trades  TradeRepository
	options OptionRepository
}

// NewTradesUsecase は新しい TradesUsecase を作成します。
func NewTradesUsecase(trades TradeRepository, options OptionRepository) *TradesUsecase {
	return &TradesUsecase{trades: trades, options: options}
}

// validateStockTrade はトレードの業務ルールを検証し、ステータスを導出します。
func validateStockTrade(t *entity.StockTrade) error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}
	if t.Side != entity.SideLong && t.Side != entity.SideShort {
		return fmt.Errorf("%w: side must be %q or %q", ErrInvalidTrade, entity.SideLong, entity.SideShort)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidTrade)
	}
	if !t.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry price must be positive", ErrInvalidTrade)
	}
	if t.Fees.IsNegative() {
		return fmt.Errorf("%w: fees cannot be negative", ErrInvalidTrade)
	}
	// 出口が揃っていればclosed、そうでなければopen
	if t.ExitPrice.Valid && t.ExitDate != nil {
		t.Status = entity.StatusClosed
	} else {
		t.Status = entity.StatusOpen
	}
	return nil
}

// validateOptionTrade はオプショントレードの業務ルールを検証します。
func validateOptionTrade(t *entity.OptionTrade) error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}
	if t.Side != entity.SideLong && t.Side != entity.SideShort {
		return fmt.Errorf("%w: side must be %q or %q", ErrInvalidTrade, entity.SideLong, entity.SideShort)
	}
	if t.OptionType != entity.OptionCall && t.OptionType != entity.OptionPut {
		return fmt.Errorf("%w: option type must be %q or %q", ErrInvalidTrade, entity.OptionCall, entity.OptionPut)
	}
	if t.Contracts <= 0 {
		return fmt.Errorf("%w: contracts must be positive", ErrInvalidTrade)
	}
	if !t.Strike.IsPositive() {
		return fmt.Errorf("%w: strike must be positive", ErrInvalidTrade)
	}
	if !t.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry premium must be positive", ErrInvalidTrade)
	}
	if t.ExitPrice.Valid && t.ExitDate != nil {
		t.Status = entity.StatusClosed
	} else {
		t.Status = entity.StatusOpen
	}
	return nil
}

// ListStockTrades はユーザーの株式トレードを返します。
func (tu *TradesUsecase) ListStockTrades(ctx context.Context, userID uint) ([]entity.StockTrade, error) {
	return tu.trades.List(ctx, userID)
}

// CreateStockTrade は検証済みの株式トレードを作成します。
func (tu *TradesUsecase) CreateStockTrade(ctx context.Context, t *entity.StockTrade) error {
	if err := validateStockTrade(t); err != nil {
		return err
	}
	return tu.trades.Create(ctx, t)
}

// UpdateStockTrade は検証済みの株式トレードを更新します。
func (tu *TradesUsecase) UpdateStockTrade(ctx context.Context, t *entity.StockTrade) error {
	if err := validateStockTrade(t); err != nil {
		return err
	}
	return tu.trades.Update(ctx, t)
}

// DeleteStockTrade はユーザーの株式トレードを削除します。
func (tu *TradesUsecase) DeleteStockTrade(ctx context.Context, userID, id uint) error {
	return tu.trades.Delete(ctx, userID, id)
}

// ListOptionTrades はユーザーのオプショントレードを返します。
func (tu *TradesUsecase) ListOptionTrades(ctx context.Context, userID uint) ([]entity.OptionTrade, error) {
	return tu.options.List(ctx, userID)
}

// CreateOptionTrade は検証済みのオプショントレードを作成します。
func (tu *TradesUsecase) CreateOptionTrade(ctx context.Context, t *entity.OptionTrade) error {
	if err := validateOptionTrade(t); err != nil {
		return err
	}
	return tu.options.Create(ctx, t)
}

// UpdateOptionTrade は検証済みのオプショントレードを更新します。
func (tu *TradesUsecase) UpdateOptionTrade(ctx context.Context, t *entity.OptionTrade) error {
	if err := validateOptionTrade(t); err != nil {
		return err
	}
	return tu.options.Update(ctx, t)
}

// DeleteOptionTrade はユーザーのオプショントレードを削除します。
func (tu *TradesUsecase) DeleteOptionTrade(ctx context.Context, userID, id uint) error {
	return tu.options.Delete(ctx, userID, id)
}
