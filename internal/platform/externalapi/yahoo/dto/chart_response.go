// Package dto defines data transfer objects for the Yahoo Finance chart API.
package dto

import "encoding/json"

// ChartResponse represents the JSON response from /v8/finance/chart/{symbol}.
// 配列要素は1件ずつデコードするため json.RawMessage で保持します。
type ChartResponse struct {
	Chart *struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult は chart.result の1要素です。
type ChartResult struct {
	Timestamp  []json.RawMessage `json:"timestamp"`
	Indicators *struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

// Quote は indicators.quote の1要素で、timestamp と並行する配列を持ちます。
type Quote struct {
	Open   []json.RawMessage `json:"open"`
	High   []json.RawMessage `json:"high"`
	Low    []json.RawMessage `json:"low"`
	Close  []json.RawMessage `json:"close"`
	Volume []json.RawMessage `json:"volume"`
}

// ChartError は chart.error の内容です。
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
