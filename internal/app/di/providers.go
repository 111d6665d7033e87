// Package di provides dependency injection factories for creating application components.
package di

import (
	"journal_backend/internal/feature/companyinfo/usecase"
	"journal_backend/internal/platform/config"
	"journal_backend/internal/platform/externalapi/alphavantage"
	"journal_backend/internal/platform/externalapi/finnhub"
	"journal_backend/internal/platform/externalapi/fmp"
	"journal_backend/internal/platform/externalapi/polygon"
	"journal_backend/internal/platform/externalapi/twelvedata"
	"journal_backend/internal/platform/externalapi/yahoochart"
	infrahttp "journal_backend/internal/platform/http"
)

// NewCompanyProviders は設定で有効なプロバイダーのクライアント一覧を組み立てます。
// 順序は照合時の優先順位（先頭が最優先）です。APIキーとベースURLは
// 環境変数の値を設定ファイルで上書きできます。
func NewCompanyProviders(cfg *config.Config) []usecase.CompanyProvider {
	var providers []usecase.CompanyProvider

	if cfg.ProviderEnabled("finnhub") {
		c := finnhub.LoadConfig()
		if o, ok := cfg.Providers["finnhub"]; ok {
			if o.APIKey != "" {
				c.APIKey = o.APIKey
			}
			if o.BaseURL != "" {
				c.BaseURL = o.BaseURL
			}
		}
		providers = append(providers, finnhub.NewClient(c, infrahttp.NewHTTPClient(c.Timeout)))
	}

	if cfg.ProviderEnabled("fmp") {
		c := fmp.LoadConfig()
		if o, ok := cfg.Providers["fmp"]; ok {
			if o.APIKey != "" {
				c.APIKey = o.APIKey
			}
			if o.BaseURL != "" {
				c.BaseURL = o.BaseURL
			}
		}
		providers = append(providers, fmp.NewClient(c, infrahttp.NewHTTPClient(c.Timeout)))
	}

	if cfg.ProviderEnabled("alphavantage") {
		c := alphavantage.LoadConfig()
		if o, ok := cfg.Providers["alphavantage"]; ok {
			if o.APIKey != "" {
				c.APIKey = o.APIKey
			}
			if o.BaseURL != "" {
				c.BaseURL = o.BaseURL
			}
		}
		providers = append(providers, alphavantage.NewClient(c, infrahttp.NewHTTPClient(c.Timeout)))
	}

	if cfg.ProviderEnabled("polygon") {
		c := polygon.LoadConfig()
		if o, ok := cfg.Providers["polygon"]; ok {
			if o.APIKey != "" {
				c.APIKey = o.APIKey
			}
			if o.BaseURL != "" {
				c.BaseURL = o.BaseURL
			}
		}
		providers = append(providers, polygon.NewClient(c, infrahttp.NewHTTPClient(c.Timeout)))
	}

	if cfg.ProviderEnabled("twelvedata") {
		c := twelvedata.LoadConfig()
		if o, ok := cfg.Providers["twelvedata"]; ok {
			if o.APIKey != "" {
				c.APIKey = o.APIKey
			}
			if o.BaseURL != "" {
				c.BaseURL = o.BaseURL
			}
		}
		providers = append(providers, twelvedata.NewClient(c, infrahttp.NewHTTPClient(c.Timeout)))
	}

	return providers
}

// NewPriceSource は時系列株価の取得元クライアントを組み立てます。
func NewPriceSource(cfg *config.Config) *yahoochart.Client {
	c := yahoochart.LoadConfig()
	if o, ok := cfg.Providers["yahoochart"]; ok && o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	return yahoochart.NewClient(c, infrahttp.NewHTTPClient(c.Timeout))
}
