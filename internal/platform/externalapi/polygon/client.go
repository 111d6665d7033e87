// Package polygon provides a client for the Polygon ticker details API.
package polygon

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

// Config holds configuration for the Polygon API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL (e.g., "https://api.polygon.io")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Polygon configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("POLYGON_BASE_URL")
	if base == "" {
		base = "https://api.polygon.io"
	}
	return Config{
		APIKey:  os.Getenv("POLYGON_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// tickerDetailsResponse is the JSON shape of /v3/reference/tickers/{ticker}.
type tickerDetailsResponse struct {
	Status  string `json:"status"`
	Results struct {
		Name            string  `json:"name"`
		PrimaryExchange string  `json:"primary_exchange"`
		CurrencyName    string  `json:"currency_name"`
		Locale          string  `json:"locale"`
		SICDescription  string  `json:"sic_description"`
		TotalEmployees  int64   `json:"total_employees"`
		MarketCap       float64 `json:"market_cap"`
		ListDate        string  `json:"list_date"`
		Description     string  `json:"description"`
		HomepageURL     string  `json:"homepage_url"`
		Branding        struct {
			LogoURL string `json:"logo_url"`
		} `json:"branding"`
	} `json:"results"`
}

// Client はPolygon APIからティッカー詳細を取得するCompanyProvider実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.CompanyProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Name returns the provider name used in DataSource.
func (c *Client) Name() string { return "polygon" }

// FetchCompanyInfo は /v3/reference/tickers/{symbol} からティッカー詳細を取得します。
// 404（未知の銘柄）は (nil, nil) を返します。
func (c *Client) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	q := url.Values{}
	q.Set("apiKey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/v3/reference/tickers/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

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

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("polygon http %d", res.StatusCode)
	}

	var body tickerDetailsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != "OK" {
		return nil, fmt.Errorf("polygon status %q", body.Status)
	}

	r := body.Results
	return &entity.CompanyInfo{
		Symbol:      symbol,
		Name:        r.Name,
		Exchange:    r.PrimaryExchange,
		Industry:    r.SICDescription,
		Country:     r.Locale,
		Currency:    r.CurrencyName,
		WebsiteURL:  r.HomepageURL,
		LogoURL:     r.Branding.LogoURL,
		Description: r.Description,
		Employees:   r.TotalEmployees,
		MarketCap:   r.MarketCap,
		IPODate:     r.ListDate,
	}, nil
}
