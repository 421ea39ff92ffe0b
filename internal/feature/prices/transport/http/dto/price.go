package dto

// PricePointResponse は日足1件のレスポンス表現です。date は YYYY-MM-DD です。
type PricePointResponse struct {
	ID           uint    `json:"id"`
	InstrumentID uint    `json:"instrumentId"`
	Symbol       string  `json:"symbol"`
	Date         string  `json:"date"`
	Open         float64 `json:"open"`
	High         float64 `json:"high"`
	Low          float64 `json:"low"`
	Close        float64 `json:"close"`
	Volume       int64   `json:"volume"`
}

// GenerateResponse はモック生成の結果です。
type GenerateResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
}
