package usecase

import (
	"context"
	"log/slog"

	"journal_backend/internal/feature/prices/domain/entity"
	"journal_backend/internal/shared/ratelimiter"
)

// ChartSpan は取得対象の（レンジ × 足）の組み合わせです。
type ChartSpan struct {
	Range    string
	Interval string
}

// ingestSpans はデータ取得の対象となる（レンジ × 足）の固定リストです。
// 銘柄ごとにこの直積を順に処理します。
var ingestSpans = []ChartSpan{
	{Range: "1mo", Interval: "1d"},
	{Range: "6mo", Interval: "1d"},
	{Range: "1y", Interval: "1wk"},
	{Range: "5y", Interval: "1mo"},
}

// PriceSource は時系列株価を取得する外部APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceSource interface {
	FetchChart(ctx context.Context, symbol, rng, interval string) ([]entity.PriceBar, error)
}

// IngestSummary は1回の価格取り込みの集計結果です。
type IngestSummary struct {
	Processed int `json:"processed"` // 処理した (symbol, range, interval) バケット数
	Skipped   int `json:"skipped"`   // 既存データありでスキップしたバケット数
	Errors    int `json:"errors"`    // 取得または保存に失敗したバケット数
	Rejected  int `json:"rejected"`  // OHLC検証で捨てたバー数
	Upserted  int `json:"upserted"`  // 保存したバー数
}

// IngestUsecase は外部APIから時系列株価を取得し、検証してデータベースに
// 永続化するユースケースを定義します。
type IngestUsecase struct {
	source      PriceSource
	prices      PriceRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source PriceSource, prices PriceRepository, rl ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{source: source, prices: prices, rateLimiter: rl}
}

// IngestAll は全銘柄 × 全（レンジ, 足）の直積を処理します。
// skipExisting の場合、既にバーが存在するバケットはフェッチ前にスキップします。
// バケット単位の失敗はログとサマリーに記録し、処理は続行します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string, skipExisting bool) (*IngestSummary, error) {
	summary := &IngestSummary{}
	for _, s := range symbols {
		for _, span := range ingestSpans {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			if skipExisting {
				exists, err := iu.prices.Exists(ctx, s, span.Range, span.Interval)
				if err != nil {
					slog.Error("existence check failed", "symbol", s, "range", span.Range, "interval", span.Interval, "error", err)
					summary.Errors++
					continue
				}
				if exists {
					summary.Skipped++
					continue
				}
			}

			iu.rateLimiter.WaitIfNeeded()
			summary.Processed++

			if err := iu.ingestOne(ctx, s, span, summary); err != nil {
				// 1つのバケットでエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
				slog.Error("failed to ingest prices", "symbol", s, "range", span.Range, "interval", span.Interval, "error", err)
				summary.Errors++
				continue
			}
		}
	}
	return summary, nil
}

// ingestOne は1バケット分のバーを取得・検証し、一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, span ChartSpan, summary *IngestSummary) error {
	bars, err := iu.source.FetchChart(ctx, symbol, span.Range, span.Interval)
	if err != nil {
		return err
	}

	valid := make([]entity.PriceBar, 0, len(bars))
	for _, b := range bars {
		if !validBar(b) {
			summary.Rejected++
			slog.Warn("rejected insane OHLC bar", "symbol", symbol, "time", b.Time,
				"open", b.Open, "high", b.High, "low", b.Low, "close", b.Close)
			continue
		}
		valid = append(valid, b)
	}
	if len(valid) == 0 {
		return nil
	}

	if err := iu.prices.UpsertBatch(ctx, valid); err != nil {
		return err
	}
	summary.Upserted += len(valid)
	return nil
}

// validBar はOHLCの整合性を検証します。高値が安値を下回る、高値が始値/終値を
// 下回る、安値が始値/終値を上回る、価格が0以下、のいずれかで不正とみなします。
func validBar(b entity.PriceBar) bool {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return false
	}
	if b.High < b.Low {
		return false
	}
	if b.High < b.Open || b.High < b.Close {
		return false
	}
	if b.Low > b.Open || b.Low > b.Close {
		return false
	}
	return b.Volume >= 0
}
