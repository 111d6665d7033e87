package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"journal_backend/internal/feature/prices/domain/entity"
)

// setupPriceDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupPriceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&PriceModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func bar(symbol, rng, interval string, day int, close float64) entity.PriceBar {
	return entity.PriceBar{
		Symbol:   symbol,
		Range:    rng,
		Interval: interval,
		Time:     time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		Open:     close - 1,
		High:     close + 2,
		Low:      close - 3,
		Close:    close,
		Volume:   1000,
	}
}

// TestPriceUpsertBatch_InsertAndUpdate は同一 (symbol, range, interval, time) の
// 再投入が重複行を作らず値を更新することを検証します。
func TestPriceUpsertBatch_InsertAndUpdate(t *testing.T) {
	t.Parallel()

	db := setupPriceDB(t)
	repo := NewPriceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.PriceBar{
		bar("AAPL", "6mo", "1d", 3, 100),
		bar("AAPL", "6mo", "1d", 4, 102),
	}))

	// 同じキーで終値を変えて再投入
	updated := bar("AAPL", "6mo", "1d", 4, 105)
	require.NoError(t, repo.UpsertBatch(ctx, []entity.PriceBar{updated}))

	var count int64
	require.NoError(t, db.Model(&PriceModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	bars, err := repo.Find(ctx, "AAPL", "6mo", "1d", 10)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	// 新しい順
	assert.Equal(t, 105.0, bars[0].Close)
	assert.Equal(t, 100.0, bars[1].Close)
}

// TestPriceUpsertBatch_Empty は空スライスで何もしないことを検証します。
func TestPriceUpsertBatch_Empty(t *testing.T) {
	t.Parallel()

	db := setupPriceDB(t)
	repo := NewPriceRepository(db)

	assert.NoError(t, repo.UpsertBatch(context.Background(), nil))
}

// TestPriceExists はバケット単位の存在判定を検証します。
func TestPriceExists(t *testing.T) {
	t.Parallel()

	db := setupPriceDB(t)
	repo := NewPriceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.PriceBar{bar("AAPL", "6mo", "1d", 3, 100)}))

	exists, err := repo.Exists(ctx, "AAPL", "6mo", "1d")
	require.NoError(t, err)
	assert.True(t, exists)

	// 別バケットは存在しない
	exists, err = repo.Exists(ctx, "AAPL", "1y", "1wk")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists(ctx, "MSFT", "6mo", "1d")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestPriceFind_LimitAndOrder は新しい順の並びと件数制限を検証します。
func TestPriceFind_LimitAndOrder(t *testing.T) {
	t.Parallel()

	db := setupPriceDB(t)
	repo := NewPriceRepository(db)
	ctx := context.Background()

	var bars []entity.PriceBar
	for d := 1; d <= 5; d++ {
		bars = append(bars, bar("AAPL", "1mo", "1d", d, float64(100+d)))
	}
	require.NoError(t, repo.UpsertBatch(ctx, bars))

	got, err := repo.Find(ctx, "AAPL", "1mo", "1d", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 105.0, got[0].Close)
	assert.Equal(t, 104.0, got[1].Close)
	assert.Equal(t, 103.0, got[2].Close)
}

// TestPriceFind_EmptyBucket はデータの無いバケットで空スライスを返すことを検証します。
func TestPriceFind_EmptyBucket(t *testing.T) {
	t.Parallel()

	db := setupPriceDB(t)
	repo := NewPriceRepository(db)

	got, err := repo.Find(context.Background(), "NONE", "6mo", "1d", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
