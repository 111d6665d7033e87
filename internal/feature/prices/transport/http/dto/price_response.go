// Package dto defines data transfer objects for the prices HTTP API.
package dto

// PriceBarResponse は時系列株価バーのレスポンスDTOです。
type PriceBarResponse struct {
	Time   string  `json:"time"`   // 日付
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// IngestRequest is the optional JSON body of POST /prices/sync.
// skipExisting defaults to true when omitted.
type IngestRequest struct {
	Symbols      []string `json:"symbols"`
	SkipExisting *bool    `json:"skipExisting"`
}

// IngestResponse is the response envelope of POST /prices/sync.
type IngestResponse struct {
	Success bool `json:"success"`
	Summary struct {
		Processed int `json:"processed"`
		Skipped   int `json:"skipped"`
		Errors    int `json:"errors"`
		Rejected  int `json:"rejected"`
		Upserted  int `json:"upserted"`
	} `json:"summary"`
}
