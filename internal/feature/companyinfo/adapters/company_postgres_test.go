package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"journal_backend/internal/feature/companyinfo/domain/entity"
)

// setupCompanyDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupCompanyDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&CompanyModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// TestCompanyUpsert_InsertAndUpdate は同一銘柄への2回目のUpsertが
// 重複行を作らず既存行を更新することを検証します。
func TestCompanyUpsert_InsertAndUpdate(t *testing.T) {
	t.Parallel()

	db := setupCompanyDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	first := entity.CompanyInfo{
		Symbol:     "AAPL",
		Name:       "Apple Inc",
		Exchange:   "NASDAQ",
		MarketCap:  3_000_000_000_000,
		DataSource: "finnhub",
		UpdatedAt:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := first
	second.Name = "Apple Inc."
	second.Sector = "Technology"
	second.DataSource = "finnhub, fmp"
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&CompanyModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindBySymbol(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", got.Name)
	assert.Equal(t, "Technology", got.Sector)
	assert.Equal(t, "finnhub, fmp", got.DataSource)
}

// TestCompanyUpsert_ClampsOversizedValues はカラム幅を超える値が
// 拒否されず切り詰めて保存されることを検証します。
func TestCompanyUpsert_ClampsOversizedValues(t *testing.T) {
	t.Parallel()

	db := setupCompanyDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	info := entity.CompanyInfo{
		Symbol:      "LONG",
		Name:        strings.Repeat("a", 300),
		Description: strings.Repeat("b", 6000),
		MarketCap:   1234.56789,
	}
	require.NoError(t, repo.Upsert(ctx, info))

	got, err := repo.FindBySymbol(ctx, "LONG")
	require.NoError(t, err)
	assert.Len(t, got.Name, maxNameLen)
	assert.Len(t, got.Description, maxDescriptionLen)
	// numeric(20,4)に合わせて小数4桁へ丸め
	assert.InDelta(t, 1234.5679, got.MarketCap, 0.00001)
}

// TestCompanyListSymbols は保存済み銘柄が昇順で返ることを検証します。
func TestCompanyListSymbols(t *testing.T) {
	t.Parallel()

	db := setupCompanyDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	for _, s := range []string{"MSFT", "AAPL", "NVDA"} {
		require.NoError(t, repo.Upsert(ctx, entity.CompanyInfo{Symbol: s, Name: s}))
	}

	symbols, err := repo.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, symbols)
}

// TestCompanyFindBySymbol_NotFound は未登録銘柄でErrCompanyNotFoundを返すことを検証します。
func TestCompanyFindBySymbol_NotFound(t *testing.T) {
	t.Parallel()

	db := setupCompanyDB(t)
	repo := NewCompanyRepository(db)

	got, err := repo.FindBySymbol(context.Background(), "NONE")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Nil(t, got)
}

// TestClampString はマルチバイト文字列がrune境界で切り詰められることを検証します。
func TestClampString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "abc", max: 10, want: "abc"},
		{name: "exactly max", in: "abcde", max: 5, want: "abcde"},
		{name: "truncated", in: "abcdef", max: 3, want: "abc"},
		{name: "multibyte boundary", in: "株式会社テスト", max: 4, want: "株式会社"},
		{name: "zero max keeps value", in: "abc", max: 0, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clampString(tt.in, tt.max))
		})
	}
}
