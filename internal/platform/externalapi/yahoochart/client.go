package yahoochart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"journal_backend/internal/feature/prices/domain/entity"
	"journal_backend/internal/feature/prices/usecase"
	"journal_backend/internal/platform/externalapi/yahoochart/dto"
)

// Client はYahoo Financeチャートエンドポイントから時系列株価を取得するPriceSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchChart は /v8/finance/chart/{symbol} から指定レンジ・足のOHLCVを取得し、
// domainのPriceBarのスライスとして返します。値がnullのスロットは読み飛ばします。
func (c *Client) FetchChart(ctx context.Context, symbol, rng, interval string) ([]entity.PriceBar, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// YahooはUser-Agentなしのリクエストを拒否することがある
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; journal-backend/1.0)")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "provider", "yahoochart", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoochart http %d", res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoochart: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]entity.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// 休場日などでnullが混ざるスロットは除外
		if i >= len(quote.Open) || quote.Open[i] == nil ||
			i >= len(quote.High) || quote.High[i] == nil ||
			i >= len(quote.Low) || quote.Low[i] == nil ||
			i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		bars = append(bars, entity.PriceBar{
			Symbol:   symbol,
			Range:    rng,
			Interval: interval,
			Time:     time.Unix(ts, 0).UTC(),
			Open:     *quote.Open[i],
			High:     *quote.High[i],
			Low:      *quote.Low[i],
			Close:    *quote.Close[i],
			Volume:   volume,
		})
	}
	return bars, nil
}
