package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"journal_backend/internal/app/di"
	"journal_backend/internal/app/router"
	assistantgemini "journal_backend/internal/feature/assistant/adapters/gemini"
	assistanthandler "journal_backend/internal/feature/assistant/transport/handler"
	assistantusecase "journal_backend/internal/feature/assistant/usecase"
	authadapters "journal_backend/internal/feature/auth/adapters"
	authhandler "journal_backend/internal/feature/auth/transport/handler"
	authusecase "journal_backend/internal/feature/auth/usecase"
	companyadapters "journal_backend/internal/feature/companyinfo/adapters"
	companyhandler "journal_backend/internal/feature/companyinfo/transport/handler"
	companyusecase "journal_backend/internal/feature/companyinfo/usecase"
	journaladapters "journal_backend/internal/feature/journal/adapters"
	journalhandler "journal_backend/internal/feature/journal/transport/handler"
	journalusecase "journal_backend/internal/feature/journal/usecase"
	priceadapters "journal_backend/internal/feature/prices/adapters"
	pricehandler "journal_backend/internal/feature/prices/transport/handler"
	priceusecase "journal_backend/internal/feature/prices/usecase"
	tradescangemini "journal_backend/internal/feature/tradescan/adapters/gemini"
	tradescanvision "journal_backend/internal/feature/tradescan/adapters/vision"
	tradescanhandler "journal_backend/internal/feature/tradescan/transport/handler"
	tradescanusecase "journal_backend/internal/feature/tradescan/usecase"
	watchlistadapters "journal_backend/internal/feature/watchlist/adapters"
	watchlisthandler "journal_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "journal_backend/internal/feature/watchlist/usecase"
	"journal_backend/internal/platform/cache"
	"journal_backend/internal/platform/config"
	infradb "journal_backend/internal/platform/db"
	jwtmw "journal_backend/internal/platform/jwt"
	infraredis "journal_backend/internal/platform/redis"
	"journal_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.LoadFromEnv()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	tradeRepo := journaladapters.NewTradeRepository(db)
	optionRepo := journaladapters.NewOptionRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	companyRepo := companyadapters.NewCompanyRepository(db)
	symbolSource := companyadapters.NewJournalSymbolSource(db)
	priceRepo := priceadapters.NewPriceRepository(db)

	// 日足以上は翌営業日まで変化しないため、Redisキャッシュでラップ
	ttl := cache.TimeUntilNextMarketOpen()
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, ttl, priceRepo, "prices")

	// 外部API
	providers := di.NewCompanyProviders(cfg)
	priceSource := di.NewPriceSource(cfg)
	rl := ratelimiter.NewRateLimiter(cfg.Ingest.RateLimit.Requests, cfg.Ingest.RateLimit.Window())

	// JWT
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, 15*time.Minute)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	tradesUC := journalusecase.NewTradesUsecase(tradeRepo, optionRepo)
	analyticsUC := journalusecase.NewAnalyticsUsecase(tradeRepo, optionRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)
	syncUC := companyusecase.NewSyncUsecase(providers, companyRepo, symbolSource, rl)
	pricesUC := priceusecase.NewPricesUsecase(cachedPriceRepo)
	ingestUC := priceusecase.NewIngestUsecase(priceSource, cachedPriceRepo, rl)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Trades:    journalhandler.NewTradeHandler(tradesUC),
		Analytics: journalhandler.NewAnalyticsHandler(analyticsUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Company:   companyhandler.NewCompanyHandler(syncUC),
		Prices:    pricehandler.NewPriceHandler(pricesUC, ingestUC, symbolSource),
	}

	// Google Cloud依存のフィーチャーは認証情報がある環境でのみ有効化
	ctx := context.Background()
	if chat, err := assistantgemini.NewGeminiChat(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. Assistant routes disabled:", err)
	} else {
		assistantUC := assistantusecase.NewAssistantUsecase(chat, analyticsUC)
		handlers.Assistant = assistanthandler.NewAssistantHandler(assistantUC)
	}
	extractor, verr := tradescanvision.NewVisionTextExtractor(ctx)
	structurer, gerr := tradescangemini.NewGeminiStructurer(ctx)
	if verr != nil || gerr != nil {
		log.Println("[WARN] Vision/Gemini unavailable. Trade scan routes disabled.")
	} else {
		scanUC := tradescanusecase.NewTradescanUsecase(extractor, structurer)
		handlers.Tradescan = tradescanhandler.NewTradescanHandler(scanUC)
	}

	// ルータ生成
	r := router.NewRouter(handlers)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
