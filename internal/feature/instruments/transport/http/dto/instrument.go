package dto

// InstrumentItem は銘柄のレスポンス表現です。
type InstrumentItem struct {
	ID     uint    `json:"id"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}
