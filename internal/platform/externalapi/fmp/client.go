// Package fmp provides a client for the Financial Modeling Prep profile API.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/feature/companyinfo/usecase"
)

// Config holds configuration for the FMP API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL (e.g., "https://financialmodelingprep.com/api/v3")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads FMP configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FMP_BASE_URL")
	if base == "" {
		base = "https://financialmodelingprep.com/api/v3"
	}
	return Config{
		APIKey:  os.Getenv("FMP_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// profileItem is one element of the JSON array returned by /profile/{symbol}.
type profileItem struct {
	CompanyName       string  `json:"companyName"`
	ExchangeShortName string  `json:"exchangeShortName"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	Website           string  `json:"website"`
	Image             string  `json:"image"`
	Description       string  `json:"description"`
	CEO               string  `json:"ceo"`
	FullTimeEmployees string  `json:"fullTimeEmployees"` // 数値が文字列で返る
	MktCap            float64 `json:"mktCap"`
	IPODate           string  `json:"ipoDate"`
}

// Client はFinancial Modeling Prep APIから企業プロフィールを取得するCompanyProvider実装です。
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
func (c *Client) Name() string { return "fmp" }

// FetchCompanyInfo は /profile/{symbol} から企業プロフィールを取得します。
// FMPは未知の銘柄に対して空配列を返すため、その場合は (nil, nil) を返します。
func (c *Client) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	q := url.Values{}
	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/profile/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

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
		return nil, fmt.Errorf("fmp http %d", res.StatusCode)
	}

	var body []profileItem
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	p := body[0]
	var employees int64
	if p.FullTimeEmployees != "" {
		// 空や非数値は0のまま扱う
		if n, err := strconv.ParseInt(p.FullTimeEmployees, 10, 64); err == nil {
			employees = n
		}
	}

	return &entity.CompanyInfo{
		Symbol:      symbol,
		Name:        p.CompanyName,
		Exchange:    p.ExchangeShortName,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Country:     p.Country,
		Currency:    p.Currency,
		WebsiteURL:  p.Website,
		LogoURL:     p.Image,
		Description: p.Description,
		CEO:         p.CEO,
		Employees:   employees,
		MarketCap:   p.MktCap,
		IPODate:     p.IPODate,
	}, nil
}
