// Package entity defines the domain models for the companyinfo feature.
package entity

import "time"

// CompanyInfo is the normalized company record reconciled from one or more
// market-data providers. Fields a provider does not know are left zero-valued.
type CompanyInfo struct {
	Symbol      string    // Stock ticker symbol (e.g., "AAPL")
	Name        string    // Company name
	Exchange    string    // Listing exchange (e.g., "NASDAQ")
	Sector      string    // GICS-style sector
	Industry    string    // Industry within the sector
	Country     string    // Headquarters country
	Currency    string    // Trading currency code
	WebsiteURL  string    // Corporate website
	LogoURL     string    // Company logo image URL
	Description string    // Business description
	CEO         string    // Chief executive name
	Employees   int64     // Full-time employee count (0 = unknown)
	MarketCap   float64   // Market capitalization in USD (0 = unknown)
	IPODate     string    // IPO date as "2006-01-02" (empty = unknown)
	DataSource  string    // Comma-joined names of contributing providers
	UpdatedAt   time.Time // Last reconciliation time
}

// IsEmpty reports whether the record carries no data beyond the symbol.
// Reconciliation skips empty records instead of upserting them.
func (c CompanyInfo) IsEmpty() bool {
	return c.Name == "" && c.Exchange == "" && c.Sector == "" &&
		c.Industry == "" && c.Description == "" && c.WebsiteURL == "" &&
		c.MarketCap == 0
}
