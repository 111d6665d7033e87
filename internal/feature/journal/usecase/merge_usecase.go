package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"journal_backend/internal/feature/journal/domain/entity"
)

// MergeStockTrades は同一銘柄・同一サイドの複数トレードを1つのポジションに
// 統合します。建値は数量加重平均（Σ(数量×単価)/Σ数量）、数量と手数料は合計、
// 建日は最古、出口は全トレードがクローズ済みの場合のみ加重平均で引き継ぎ、
// 手仕舞い日は最新を採用します。元トレードの削除とマージ結果の作成は
// リポジトリ側で1トランザクションとして実行されます。
func (tu *TradesUsecase) MergeStockTrades(ctx context.Context, userID uint, ids []uint) (*entity.StockTrade, error) {
	if len(ids) < 2 {
		return nil, ErrMergeTooFew
	}

	trades, err := tu.trades.FindByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(trades) != len(ids) {
		return nil, ErrTradeNotFound
	}

	first := trades[0]
	for _, t := range trades[1:] {
		if t.Symbol != first.Symbol {
			return nil, ErrMergeMixedSymbols
		}
		if t.Side != first.Side {
			return nil, ErrMergeMixedSides
		}
	}

	var (
		totalQty      decimal.Decimal
		entryWeighted decimal.Decimal
		exitWeighted  decimal.Decimal
		totalFees     decimal.Decimal
		allClosed     = true
		notes         []string
	)
	merged := entity.StockTrade{
		UserID:    userID,
		Symbol:    first.Symbol,
		Side:      first.Side,
		EntryDate: first.EntryDate,
	}

	for _, t := range trades {
		totalQty = totalQty.Add(t.Quantity)
		entryWeighted = entryWeighted.Add(t.EntryPrice.Mul(t.Quantity))
		totalFees = totalFees.Add(t.Fees)

		if t.EntryDate.Before(merged.EntryDate) {
			merged.EntryDate = t.EntryDate
		}
		if t.IsClosed() {
			exitWeighted = exitWeighted.Add(t.ExitPrice.Decimal.Mul(t.Quantity))
			if merged.ExitDate == nil || t.ExitDate.After(*merged.ExitDate) {
				d := *t.ExitDate
				merged.ExitDate = &d
			}
		} else {
			allClosed = false
		}
		if n := strings.TrimSpace(t.Notes); n != "" {
			notes = append(notes, n)
		}
	}

	if !totalQty.IsPositive() {
		return nil, ErrMergeZeroQuantity
	}

	merged.Quantity = totalQty
	merged.EntryPrice = entryWeighted.Div(totalQty)
	merged.Fees = totalFees
	merged.Notes = strings.Join(notes, "\n")

	if allClosed {
		merged.ExitPrice = decimal.NewNullDecimal(exitWeighted.Div(totalQty))
		merged.Status = entity.StatusClosed
	} else {
		// 一部が未決済なら、統合後のポジションも未決済として扱う
		merged.ExitDate = nil
		merged.Status = entity.StatusOpen
	}

	if err := tu.trades.Replace(ctx, &merged, ids); err != nil {
		return nil, err
	}
	return &merged, nil
}
