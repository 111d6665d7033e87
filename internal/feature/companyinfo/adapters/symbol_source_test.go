package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	journalentity "journal_backend/internal/feature/journal/domain/entity"
	watchentity "journal_backend/internal/feature/watchlist/domain/entity"
)

// setupSymbolSourceDB はトレード・ウォッチリストのテーブルを持つ
// テスト用のインメモリSQLiteデータベースを準備します。
func setupSymbolSourceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&journalentity.StockTrade{},
		&journalentity.OptionTrade{},
		&watchentity.WatchlistItem{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedStockTrade(t *testing.T, db *gorm.DB, symbol string) {
	t.Helper()
	err := db.Create(&journalentity.StockTrade{
		UserID:     1,
		Symbol:     symbol,
		Side:       journalentity.SideLong,
		Quantity:   decimal.NewFromInt(10),
		EntryPrice: decimal.NewFromInt(100),
		EntryDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:     journalentity.StatusOpen,
	}).Error
	require.NoError(t, err, "failed to seed stock trade")
}

func seedOptionTrade(t *testing.T, db *gorm.DB, symbol string) {
	t.Helper()
	err := db.Create(&journalentity.OptionTrade{
		UserID:     1,
		Symbol:     symbol,
		Side:       journalentity.SideLong,
		OptionType: journalentity.OptionCall,
		Strike:     decimal.NewFromInt(150),
		Expiration: time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC),
		Contracts:  1,
		EntryPrice: decimal.NewFromFloat(2.5),
		EntryDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:     journalentity.StatusOpen,
	}).Error
	require.NoError(t, err, "failed to seed option trade")
}

func seedWatchlistItem(t *testing.T, db *gorm.DB, symbol string) {
	t.Helper()
	err := db.Create(&watchentity.WatchlistItem{
		UserID:   1,
		Symbol:   symbol,
		IsActive: true,
	}).Error
	require.NoError(t, err, "failed to seed watchlist item")
}

// TestJournalSymbolSource_UnionsAndSorts は3テーブルの銘柄が
// 重複なしの昇順で返ることを検証します。
func TestJournalSymbolSource_UnionsAndSorts(t *testing.T) {
	t.Parallel()

	db := setupSymbolSourceDB(t)
	seedStockTrade(t, db, "MSFT")
	seedStockTrade(t, db, "AAPL")
	seedStockTrade(t, db, "AAPL") // 同一銘柄の複数トレード
	seedOptionTrade(t, db, "AAPL")
	seedOptionTrade(t, db, "TSLA")
	seedWatchlistItem(t, db, "NVDA")
	seedWatchlistItem(t, db, "MSFT")

	source := NewJournalSymbolSource(db)
	symbols, err := source.ListSymbols(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA", "TSLA"}, symbols)
}

// TestJournalSymbolSource_Empty はデータが無い場合に空スライスを返すことを検証します。
func TestJournalSymbolSource_Empty(t *testing.T) {
	t.Parallel()

	db := setupSymbolSourceDB(t)
	source := NewJournalSymbolSource(db)

	symbols, err := source.ListSymbols(context.Background())
	require.NoError(t, err)
	assert.Empty(t, symbols)
}
