package adapters

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"journal_backend/internal/feature/companyinfo/usecase"
)

// journalSymbolSource は同期対象のデフォルトの銘柄集合を提供します。
// ジャーナル（株式・オプション）とウォッチリストに登場する銘柄の和集合です。
type journalSymbolSource struct {
	db *gorm.DB
}

var _ usecase.SymbolSource = (*journalSymbolSource)(nil)

// NewJournalSymbolSource は指定されたDB接続でjournalSymbolSourceの新しいインスタンスを生成します。
func NewJournalSymbolSource(db *gorm.DB) *journalSymbolSource {
	return &journalSymbolSource{db: db}
}

// ListSymbols はトレードとウォッチリストに存在する銘柄を重複なしの昇順で返します。
func (s *journalSymbolSource) ListSymbols(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, table := range []string{"stock_trades", "option_trades", "watchlist_items"} {
		var symbols []string
		if err := s.db.WithContext(ctx).
			Table(table).
			Distinct("symbol").
			Pluck("symbol", &symbols).Error; err != nil {
			return nil, err
		}
		for _, sym := range symbols {
			if sym != "" {
				seen[sym] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out, nil
}
