// Package alphavantage provides a client for the Alpha Vantage OVERVIEW API.
package alphavantage

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

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL (e.g., "https://www.alphavantage.co")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("ALPHA_VANTAGE_BASE_URL")
	if base == "" {
		base = "https://www.alphavantage.co"
	}
	return Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// overviewResponse is the JSON shape of function=OVERVIEW.
// Alpha Vantageは数値も含めてすべて文字列で返します。
type overviewResponse struct {
	Name                 string `json:"Name"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Country              string `json:"Country"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	Description          string `json:"Description"`
	OfficialSite         string `json:"OfficialSite"`
	MarketCapitalization string `json:"MarketCapitalization"`

	// Note はレートリミット超過時にのみ入るメッセージです。
	Note string `json:"Note"`
}

// Client はAlpha Vantage APIから企業概要を取得するCompanyProvider実装です。
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
func (c *Client) Name() string { return "alphavantage" }

// FetchCompanyInfo は function=OVERVIEW から企業概要を取得します。
// 未知の銘柄では空オブジェクトが返るため (nil, nil) を返します。
// レートリミット超過（Noteフィールド）はエラーとして扱います。
func (c *Client) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	q := url.Values{}
	q.Set("function", "OVERVIEW")
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

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
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body overviewResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Note != "" {
		return nil, fmt.Errorf("alphavantage: %s", body.Note)
	}
	if body.Name == "" && body.Description == "" {
		return nil, nil
	}

	var marketCap float64
	if body.MarketCapitalization != "" && body.MarketCapitalization != "None" {
		if v, err := strconv.ParseFloat(body.MarketCapitalization, 64); err == nil {
			marketCap = v
		}
	}

	return &entity.CompanyInfo{
		Symbol:      symbol,
		Name:        body.Name,
		Exchange:    body.Exchange,
		Sector:      body.Sector,
		Industry:    body.Industry,
		Country:     body.Country,
		Currency:    body.Currency,
		WebsiteURL:  body.OfficialSite,
		Description: body.Description,
		MarketCap:   marketCap,
	}, nil
}
