// Package usecase は企業情報の収集・リコンサイルのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/shared/ratelimiter"
)

// Sync result statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CompanyProvider は1つの外部市場データAPIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyProvider interface {
	// Name returns the provider's display name used in DataSource.
	Name() string
	// FetchCompanyInfo は銘柄1件の企業情報を取得します。
	// プロバイダが銘柄を知らない場合は (nil, nil) を返します。
	FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
}

// CompanyRepository は企業情報の永続化層を抽象化します。
type CompanyRepository interface {
	// Upsert inserts or updates a company record keyed by symbol.
	Upsert(ctx context.Context, info entity.CompanyInfo) error
	// ListSymbols returns the symbols that already have a company record.
	ListSymbols(ctx context.Context) ([]string, error)
	// FindBySymbol returns the stored record for one symbol.
	FindBySymbol(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
}

// SymbolSource は同期対象の銘柄一覧（トレード＋ウォッチリスト）を提供します。
type SymbolSource interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// SyncOptions controls a reconciliation run.
type SyncOptions struct {
	Symbols      []string // explicit symbols; empty = all known symbols
	SkipExisting bool     // skip symbols that already have a record
	MaxSymbols   int      // cap on symbols per run (0 = no cap)
}

// SyncResult is the per-symbol outcome of a run.
type SyncResult struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	DataSource string `json:"dataSource,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SyncSummary aggregates a reconciliation run.
type SyncSummary struct {
	Processed  int          `json:"processed"`
	Successful int          `json:"successful"`
	Errors     int          `json:"errors"`
	Results    []SyncResult `json:"results"`
}

// SyncUsecase は複数プロバイダへのファンアウト、マージ、UPSERTまでの
// 同期処理を実装します。
type SyncUsecase struct {
	providers   []CompanyProvider
	companies   CompanyRepository
	symbols     SymbolSource
	rateLimiter ratelimiter.RateLimiterInterface
	now         func() time.Time
}

// NewSyncUsecase は新しい SyncUsecase を作成します。
func NewSyncUsecase(providers []CompanyProvider, companies CompanyRepository,
	symbols SymbolSource, rl ratelimiter.RateLimiterInterface) *SyncUsecase {
	return &SyncUsecase{
		providers:   providers,
		companies:   companies,
		symbols:     symbols,
		rateLimiter: rl,
		now:         time.Now,
	}
}

// Sync は対象銘柄を決定し、銘柄ごとに全プロバイダへ並行フェッチして
// マージ結果をUPSERTします。プロバイダや銘柄単位の失敗はサマリーに
// 記録するだけで、処理全体は止めません。
func (su *SyncUsecase) Sync(ctx context.Context, opts SyncOptions) (*SyncSummary, error) {
	symbols, err := su.resolveSymbols(ctx, opts)
	if err != nil {
		return nil, err
	}

	summary := &SyncSummary{Results: make([]SyncResult, 0, len(symbols))}
	for _, s := range symbols {
		su.rateLimiter.WaitIfNeeded()
		summary.Processed++

		combined := combine(s, su.fetchAll(ctx, s))
		if combined == nil {
			summary.Errors++
			summary.Results = append(summary.Results, SyncResult{
				Symbol: s, Status: StatusError, Error: "no provider returned data",
			})
			continue
		}
		combined.UpdatedAt = su.now().UTC()

		if err := su.companies.Upsert(ctx, *combined); err != nil {
			slog.Error("failed to upsert company info", "symbol", s, "error", err)
			summary.Errors++
			summary.Results = append(summary.Results, SyncResult{
				Symbol: s, Status: StatusError, Error: err.Error(),
			})
			continue
		}

		summary.Successful++
		summary.Results = append(summary.Results, SyncResult{
			Symbol: s, Status: StatusOK, DataSource: combined.DataSource,
		})
	}
	return summary, nil
}

// GetCompanyInfo は保存済みの企業情報を1件返します。
func (su *SyncUsecase) GetCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	return su.companies.FindBySymbol(ctx, symbol)
}

// resolveSymbols は明示指定・既存スキップ・上限を適用した対象銘柄を返します。
func (su *SyncUsecase) resolveSymbols(ctx context.Context, opts SyncOptions) ([]string, error) {
	symbols := opts.Symbols
	if len(symbols) == 0 {
		var err error
		symbols, err = su.symbols.ListSymbols(ctx)
		if err != nil {
			return nil, err
		}
	}

	if opts.SkipExisting {
		existing, err := su.companies.ListSymbols(ctx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(existing))
		for _, s := range existing {
			seen[s] = struct{}{}
		}
		remaining := symbols[:0]
		for _, s := range symbols {
			if _, ok := seen[s]; !ok {
				remaining = append(remaining, s)
			}
		}
		symbols = remaining
	}

	if opts.MaxSymbols > 0 && len(symbols) > opts.MaxSymbols {
		symbols = symbols[:opts.MaxSymbols]
	}
	return symbols, nil
}

// fetchAll は全プロバイダへ並行にフェッチし、成否に関わらず全結果を集めます。
// 個々のプロバイダのエラーはログに残し、その銘柄の他プロバイダ結果は生かします。
func (su *SyncUsecase) fetchAll(ctx context.Context, symbol string) []providerResult {
	results := make([]providerResult, len(su.providers))
	var wg sync.WaitGroup
	for i, p := range su.providers {
		wg.Add(1)
		go func(i int, p CompanyProvider) {
			defer wg.Done()
			info, err := p.FetchCompanyInfo(ctx, symbol)
			if err != nil {
				slog.Warn("provider fetch failed", "provider", p.Name(), "symbol", symbol, "error", err)
			}
			results[i] = providerResult{name: p.Name(), info: info, err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}
