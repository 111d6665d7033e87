package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "journal_backend/internal/feature/auth/adapters"
	authentity "journal_backend/internal/feature/auth/domain/entity"
	companyadapters "journal_backend/internal/feature/companyinfo/adapters"
	journalentity "journal_backend/internal/feature/journal/domain/entity"
	priceadapters "journal_backend/internal/feature/prices/adapters"
	watchentity "journal_backend/internal/feature/watchlist/domain/entity"
)

// OpenDB はPostgresへの接続を確立します。DATABASE_URL（Supabase等のマネージド
// Postgresが発行する接続文字列）が設定されていればそれを優先し、なければ
// 個別の環境変数からDSNを組み立てます。起動直後のDB未起動に備えて60秒間
// リトライします。
func OpenDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, pass, name, sslmode)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, トレード, ウォッチリスト, 企業情報, 価格）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&journalentity.StockTrade{},
			&journalentity.OptionTrade{},
			&watchentity.WatchlistItem{},
			&companyadapters.CompanyModel{},
			&priceadapters.PriceModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
