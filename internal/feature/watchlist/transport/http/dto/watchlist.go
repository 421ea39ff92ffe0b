package dto

import instrumentdto "stockboard_backend/internal/feature/instruments/transport/http/dto"

// AddRequest はウォッチリスト追加のリクエストボディです。
// instrumentId の欠落と0を区別するためポインタで受けます。
type AddRequest struct {
	InstrumentID *uint `json:"instrumentId" binding:"required"`
}

// WatchlistItem はウォッチリストのエントリと銘柄情報のレスポンス表現です。
type WatchlistItem struct {
	ID           uint                         `json:"id"`
	InstrumentID uint                         `json:"instrumentId"`
	Instrument   instrumentdto.InstrumentItem `json:"instrument"`
}

// CheckResponse は存在確認のレスポンスです。
type CheckResponse struct {
	InWatchlist bool `json:"inWatchlist"`
}
