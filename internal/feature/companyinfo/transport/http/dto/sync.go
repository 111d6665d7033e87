// Package dto defines data transfer objects for the companyinfo HTTP API.
package dto

// SyncRequest is the optional JSON body of POST /company-info/sync.
// skipExisting defaults to true when omitted.
type SyncRequest struct {
	Symbols      []string `json:"symbols"`
	SkipExisting *bool    `json:"skipExisting"`
	MaxSymbols   int      `json:"maxSymbols"`
}

// SyncSummary mirrors the run counters in the response envelope.
type SyncSummary struct {
	Processed  int `json:"processed"`
	Successful int `json:"successful"`
	Errors     int `json:"errors"`
}

// SyncResult is the per-symbol outcome in the response.
type SyncResult struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	DataSource string `json:"dataSource,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SyncResponse is the response envelope of POST /company-info/sync.
type SyncResponse struct {
	Success bool         `json:"success"`
	Summary SyncSummary  `json:"summary"`
	Results []SyncResult `json:"results"`
}

// CompanyResponse is the response of GET /company-info/:symbol.
type CompanyResponse struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	Sector      string  `json:"sector,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Country     string  `json:"country,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	WebsiteURL  string  `json:"websiteUrl,omitempty"`
	LogoURL     string  `json:"logoUrl,omitempty"`
	Description string  `json:"description,omitempty"`
	CEO         string  `json:"ceo,omitempty"`
	Employees   int64   `json:"employees,omitempty"`
	MarketCap   float64 `json:"marketCap,omitempty"`
	IPODate     string  `json:"ipoDate,omitempty"`
	DataSource  string  `json:"dataSource,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}
