// 企業情報と時系列株価のバッチ取り込みジョブ。cronやCloud Schedulerから
// 定期実行される前提で、結果サマリーをログに出して終了します。
package main

import (
	"context"
	"log"
	"time"

	"journal_backend/internal/app/di"
	companyadapters "journal_backend/internal/feature/companyinfo/adapters"
	companyusecase "journal_backend/internal/feature/companyinfo/usecase"
	priceadapters "journal_backend/internal/feature/prices/adapters"
	priceusecase "journal_backend/internal/feature/prices/usecase"
	"journal_backend/internal/platform/config"
	infradb "journal_backend/internal/platform/db"
	"journal_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.LoadFromEnv()
	db := infradb.OpenDB()

	companyRepo := companyadapters.NewCompanyRepository(db)
	symbolSource := companyadapters.NewJournalSymbolSource(db)
	priceRepo := priceadapters.NewPriceRepository(db)

	providers := di.NewCompanyProviders(cfg)
	priceSource := di.NewPriceSource(cfg)
	rl := ratelimiter.NewRateLimiter(cfg.Ingest.RateLimit.Requests, cfg.Ingest.RateLimit.Window())

	syncUC := companyusecase.NewSyncUsecase(providers, companyRepo, symbolSource, rl)
	ingestUC := priceusecase.NewIngestUsecase(priceSource, priceRepo, rl)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := syncUC.Sync(ctx, companyusecase.SyncOptions{
		SkipExisting: true,
		MaxSymbols:   cfg.Ingest.MaxSymbols,
	})
	if err != nil {
		log.Fatal("company sync failed:", err)
	}
	log.Printf("company sync ok: processed=%d successful=%d errors=%d",
		summary.Processed, summary.Successful, summary.Errors)

	symbols, err := symbolSource.ListSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load symbols:", err)
	}

	prices, err := ingestUC.IngestAll(ctx, symbols, true)
	if err != nil {
		log.Fatal("price ingest failed:", err)
	}
	log.Printf("price ingest ok: processed=%d skipped=%d upserted=%d rejected=%d errors=%d",
		prices.Processed, prices.Skipped, prices.Upserted, prices.Rejected, prices.Errors)
}
