package entity

import instrument "stockboard_backend/internal/feature/instruments/domain/entity"

// Entry はユーザーのウォッチリストに登録された1銘柄を表します。
type Entry struct {
	ID           uint
	UserID       string
	InstrumentID uint
	Instrument   instrument.Instrument // 登録時点ではなく参照時点の銘柄情報
}
