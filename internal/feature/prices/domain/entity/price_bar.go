// Package entity defines the domain models for the prices feature.
package entity

import "time"

// PriceBar represents one OHLCV bar of historical price data for a symbol,
// fetched for a specific (range, interval) bucket.
type PriceBar struct {
	Symbol   string    // Stock ticker symbol (e.g., "AAPL")
	Range    string    // Fetch range (e.g., "1mo", "6mo", "1y", "5y")
	Interval string    // Bar interval (e.g., "1d", "1wk", "1mo")
	Time     time.Time // Timestamp for the start of this bar
	Open     float64   // Opening price
	High     float64   // Highest price during this bar
	Low      float64   // Lowest price during this bar
	Close    float64   // Closing price
	Volume   int64     // Trading volume
}
