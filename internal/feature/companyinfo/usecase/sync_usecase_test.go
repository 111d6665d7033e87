package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_backend/internal/feature/companyinfo/domain/entity"
)

// mockProvider はテスト用のCompanyProviderモック実装です。
type mockProvider struct {
	name    string
	fetchFn func(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, symbol)
	}
	return nil, nil
}

// mockCompanyRepository はテスト用のCompanyRepositoryモック実装です。
type mockCompanyRepository struct {
	upsertFn       func(ctx context.Context, info entity.CompanyInfo) error
	listSymbolsFn  func(ctx context.Context) ([]string, error)
	findBySymbolFn func(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
	upserted       []entity.CompanyInfo
}

func (m *mockCompanyRepository) Upsert(ctx context.Context, info entity.CompanyInfo) error {
	m.upserted = append(m.upserted, info)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, info)
	}
	return nil
}

func (m *mockCompanyRepository) ListSymbols(ctx context.Context) ([]string, error) {
	if m.listSymbolsFn != nil {
		return m.listSymbolsFn(ctx)
	}
	return nil, nil
}

func (m *mockCompanyRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	if m.findBySymbolFn != nil {
		return m.findBySymbolFn(ctx, symbol)
	}
	return nil, nil
}

// mockSymbolSource はテスト用のSymbolSourceモック実装です。
type mockSymbolSource struct {
	listSymbolsFn func(ctx context.Context) ([]string, error)
}

func (m *mockSymbolSource) ListSymbols(ctx context.Context) ([]string, error) {
	if m.listSymbolsFn != nil {
		return m.listSymbolsFn(ctx)
	}
	return nil, nil
}

// mockRateLimiter は待機せずに呼び出し回数だけ数えるモックです。
type mockRateLimiter struct {
	calls int
}

func (m *mockRateLimiter) WaitIfNeeded() { m.calls++ }

func newTestSyncUsecase(providers []CompanyProvider, repo *mockCompanyRepository,
	source *mockSymbolSource) (*SyncUsecase, *mockRateLimiter) {
	rl := &mockRateLimiter{}
	uc := NewSyncUsecase(providers, repo, source, rl)
	uc.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	return uc, rl
}

// TestSync_ExplicitSymbols は明示指定した銘柄がそのまま処理されることを検証します。
func TestSync_ExplicitSymbols(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "finnhub",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			return &entity.CompanyInfo{Name: symbol + " Corp", Exchange: "NASDAQ"}, nil
		},
	}
	repo := &mockCompanyRepository{}
	uc, rl := newTestSyncUsecase([]CompanyProvider{provider}, repo, &mockSymbolSource{})

	summary, err := uc.Sync(context.Background(), SyncOptions{Symbols: []string{"AAPL", "MSFT"}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 2, rl.calls)

	require.Len(t, repo.upserted, 2)
	assert.Equal(t, "AAPL", repo.upserted[0].Symbol)
	assert.Equal(t, "finnhub", repo.upserted[0].DataSource)
	assert.Equal(t, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), repo.upserted[0].UpdatedAt)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, StatusOK, summary.Results[0].Status)
	assert.Equal(t, "finnhub", summary.Results[0].DataSource)
}

// TestSync_DefaultsToSymbolSource は銘柄未指定時にSymbolSourceの一覧が
// 使われることを検証します。
func TestSync_DefaultsToSymbolSource(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "fmp",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			return &entity.CompanyInfo{Name: symbol}, nil
		},
	}
	repo := &mockCompanyRepository{}
	source := &mockSymbolSource{
		listSymbolsFn: func(ctx context.Context) ([]string, error) {
			return []string{"NVDA", "TSLA", "AMD"}, nil
		},
	}
	uc, _ := newTestSyncUsecase([]CompanyProvider{provider}, repo, source)

	summary, err := uc.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 3, summary.Successful)
}

// TestSync_SkipExisting は既存レコードのある銘柄が除外されることを検証します。
func TestSync_SkipExisting(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "finnhub",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			return &entity.CompanyInfo{Name: symbol}, nil
		},
	}
	repo := &mockCompanyRepository{
		listSymbolsFn: func(ctx context.Context) ([]string, error) {
			return []string{"AAPL"}, nil
		},
	}
	uc, _ := newTestSyncUsecase([]CompanyProvider{provider}, repo, &mockSymbolSource{})

	summary, err := uc.Sync(context.Background(), SyncOptions{
		Symbols:      []string{"AAPL", "MSFT"},
		SkipExisting: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "MSFT", repo.upserted[0].Symbol)
}

// TestSync_MaxSymbols は1回の実行で処理する銘柄数が上限で打ち切られることを検証します。
func TestSync_MaxSymbols(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "finnhub",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			return &entity.CompanyInfo{Name: symbol}, nil
		},
	}
	repo := &mockCompanyRepository{}
	uc, _ := newTestSyncUsecase([]CompanyProvider{provider}, repo, &mockSymbolSource{})

	summary, err := uc.Sync(context.Background(), SyncOptions{
		Symbols:    []string{"A", "B", "C", "D"},
		MaxSymbols: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, "A", repo.upserted[0].Symbol)
	assert.Equal(t, "B", repo.upserted[1].Symbol)
}

// TestSync_NoProviderData は全プロバイダが空の銘柄がエラーとして記録され、
// 後続の銘柄は処理が続くことを検証します。
func TestSync_NoProviderData(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "finnhub",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			if symbol == "UNKNOWN" {
				return nil, nil
			}
			return &entity.CompanyInfo{Name: symbol}, nil
		},
	}
	repo := &mockCompanyRepository{}
	uc, _ := newTestSyncUsecase([]CompanyProvider{provider}, repo, &mockSymbolSource{})

	summary, err := uc.Sync(context.Background(), SyncOptions{Symbols: []string{"UNKNOWN", "AAPL"}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Errors)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, StatusError, summary.Results[0].Status)
	assert.Equal(t, "no provider returned data", summary.Results[0].Error)
	assert.Equal(t, StatusOK, summary.Results[1].Status)
}

// TestSync_UpsertError はUPSERT失敗がエラーとして記録されるだけで
// 処理全体は失敗しないことを検証します。
func TestSync_UpsertError(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		name: "finnhub",
		fetchFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			return &entity.CompanyInfo{Name: symbol}, nil
		},
	}
	repo := &mockCompanyRepository{
		upsertFn: func(ctx context.Context, info entity.CompanyInfo) error {
			if info.Symbol == "BAD" {
				return errors.New("db unavailable")
			}
			return nil
		},
	}
	uc, _ := newTestSyncUsecase([]CompanyProvider{provider}, repo, &mockSymbolSource{})

	summary, err := uc.Sync(context.Background(), SyncOptions{Symbols: []string{"BAD", "GOOD"}})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, "db unavailable", summary.Results[0].Error)
}

// TestSync_SymbolSourceError は対象銘柄の取得失敗が即時エラーになることを検証します。
func TestSync_SymbolSourceError(t *testing.T) {
	t.Parallel()

	source := &mockSymbolSource{
		listSymbolsFn: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	uc, _ := newTestSyncUsecase(nil, &mockCompanyRepository{}, source)

	summary, err := uc.Sync(context.Background(), SyncOptions{})
	assert.Error(t, err)
	assert.Nil(t, summary)
}

// TestGetCompanyInfo はリポジトリの結果をそのまま返すことを検証します。
func TestGetCompanyInfo(t *testing.T) {
	t.Parallel()

	want := &entity.CompanyInfo{Symbol: "AAPL", Name: "Apple Inc"}
	repo := &mockCompanyRepository{
		findBySymbolFn: func(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
			assert.Equal(t, "AAPL", symbol)
			return want, nil
		},
	}
	uc, _ := newTestSyncUsecase(nil, repo, &mockSymbolSource{})

	got, err := uc.GetCompanyInfo(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
