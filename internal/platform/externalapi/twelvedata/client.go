package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/feature/companyinfo/usecase"
	"journal_backend/internal/platform/externalapi/twelvedata/dto"
)

// Client はTwelve Data外部APIから企業プロフィールを取得するCompanyProvider実装です。
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
func (c *Client) Name() string { return "twelvedata" }

// FetchCompanyInfo はTwelve Data APIの /profile から企業プロフィールを取得し、
// domainのCompanyInfoとして返します。
func (c *Client) FetchCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s/profile?%s", c.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
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
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.ProfileResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}
	if body.Name == "" && body.Description == "" {
		return nil, nil
	}

	// ドメインエンティティに変換
	return &entity.CompanyInfo{
		Symbol:      symbol,
		Name:        body.Name,
		Exchange:    body.Exchange,
		Sector:      body.Sector,
		Industry:    body.Industry,
		WebsiteURL:  body.Website,
		Description: body.Description,
		CEO:         body.CEO,
		Employees:   body.Employees,
	}, nil
}
