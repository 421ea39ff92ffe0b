package entity

import "time"

// PricePoint は1銘柄・1営業日分のOHLCVです。
type PricePoint struct {
	ID           uint
	InstrumentID uint      // 外部プロバイダから取得したものは0
	Symbol       string    // 銘柄シンボル（参照時に結合）
	Date         time.Time // UTC 0時の暦日
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       int64
}

// SourceRequest は外部価格ソースへの取得リクエストです。
type SourceRequest struct {
	Symbol string
	Range  string // プロバイダ固有の期間トークン（例: 1mo, 1y）
	APIKey string // 空ならソース側の設定値を使う
}

// CivilDate は t の暦日を UTC 0時で返します。暦日は t 自身のロケーションで判定します。
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
