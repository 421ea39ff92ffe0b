// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// Top-level keys of a TIME_SERIES_DAILY response.
const (
	KeyErrorMessage = "Error Message"
	KeyNote         = "Note"
	KeyInformation  = "Information"
	KeyTimeSeries   = "Time Series (Daily)"
)

// DailyEntry は "Time Series (Daily)" の1日分です。数値は文字列で返されます。
type DailyEntry struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
