// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Twelve Data time_series endpoint.
type TimeSeriesResponse struct {
	Status  string       `json:"status"`
	Code    int          `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
	Values  []ValueEntry `json:"values"`
}

type Meta struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
}

// ValueEntry は1本分の足です。数値はすべて文字列で返されます。
type ValueEntry struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}
