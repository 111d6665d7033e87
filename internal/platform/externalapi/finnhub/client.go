// Package finnhub provides a client for the Finnhub company profile API.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/feature/companyinfo/usecase"
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL (e.g., "https://finnhub.io/api/v1")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FINNHUB_BASE_URL")
	if base == "" {
		base = "https://finnhub.io/api/v1"
	}
	return Config{
		APIKey:  os.Getenv("FINNHUB_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// profileResponse is the JSON shape of the /stock/profile2 endpoint.
type profileResponse struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	IPO                  string  `json:"ipo"`
	Logo                 string  `json:"logo"`
	MarketCapitalization float64 `json:"marketCapitalization"` // millions of USD
	Name                 string  `json:"name"`
	WebURL               string  `json:"weburl"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
}

// Client はFinnhub APIから企業プロフィールを取得するCompanyProvider実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCompanyProviderを実装していることをコンパイル時に検証します。
var _ usecase.CompanyProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Name returns the provider name used in DataSource.
func (c *Client) Name() string { return "finnhub" }

// FetchCompanyInfo は /stock/profile2 から企業プロフィールを取得します。
// Finnhubは未知の銘柄に対して空のオブジェクトを返すため、その場合は (nil, nil) を返します。
func (c *Client) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s/stock/profile2?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "provider", c.Name(), "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body profileResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	// 未知の銘柄は空オブジェクトで返ってくる
	if body.Name == "" && body.Exchange == "" && body.WebURL == "" {
		return nil, nil
	}

	return &entity.CompanyInfo{
		Symbol:    symbol,
		Name:      body.Name,
		Exchange:  body.Exchange,
		Industry:  body.FinnhubIndustry,
		Country:   body.Country,
		Currency:  body.Currency,
		WebsiteURL: body.WebURL,
		LogoURL:   body.Logo,
		MarketCap: body.MarketCapitalization * 1e6, // APIは百万USD単位
		IPODate:   body.IPO,
	}, nil
}
