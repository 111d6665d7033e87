// Package yahoochart provides a client for the Yahoo Finance chart API.
package yahoochart

import (
	"os"
	"time"
)

// Config holds configuration for the Yahoo chart API client.
// The endpoint is public and needs no API key.
type Config struct {
	BaseURL string        // Base URL (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo chart configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_CHART_BASE_URL")
	if base == "" {
		base = "https://query1.finance.yahoo.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 15 * time.Second,
	}
}
