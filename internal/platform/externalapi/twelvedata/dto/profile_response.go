// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// ProfileResponse represents the JSON response from the Twelve Data profile endpoint.
type ProfileResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Employees int64 `json:"employees"`
	Website  string `json:"website"`
	Description string `json:"description"`
	CEO      string `json:"CEO"`
}
