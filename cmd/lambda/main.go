// AWS Lambda版の取り込みジョブ。EventBridgeのスケジュールイベントから
// 起動され、cmd/ingestと同じ処理を実行して結果サマリーを返します。
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"journal_backend/internal/app/di"
	companyadapters "journal_backend/internal/feature/companyinfo/adapters"
	companyusecase "journal_backend/internal/feature/companyinfo/usecase"
	priceadapters "journal_backend/internal/feature/prices/adapters"
	priceusecase "journal_backend/internal/feature/prices/usecase"
	"journal_backend/internal/platform/config"
	infradb "journal_backend/internal/platform/db"
	"journal_backend/internal/shared/ratelimiter"
)

func handler(ctx context.Context) (map[string]interface{}, error) {
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

	companies, err := syncUC.Sync(ctx, companyusecase.SyncOptions{
		SkipExisting: true,
		MaxSymbols:   cfg.Ingest.MaxSymbols,
	})
	if err != nil {
		return nil, fmt.Errorf("company sync failed: %w", err)
	}

	symbols, err := symbolSource.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load symbols: %w", err)
	}

	prices, err := ingestUC.IngestAll(ctx, symbols, true)
	if err != nil {
		return nil, fmt.Errorf("price ingest failed: %w", err)
	}

	log.Printf("ingest ok: companies=%d/%d bars=%d", companies.Successful, companies.Processed, prices.Upserted)
	return map[string]interface{}{
		"statusCode": 200,
		"companies": map[string]int{
			"processed":  companies.Processed,
			"successful": companies.Successful,
			"errors":     companies.Errors,
		},
		"prices": map[string]int{
			"processed": prices.Processed,
			"skipped":   prices.Skipped,
			"upserted":  prices.Upserted,
			"rejected":  prices.Rejected,
			"errors":    prices.Errors,
		},
	}, nil
}

func main() {
	lambda.Start(handler)
}
