package domain

import "errors"

var (
	// ErrAlreadyInWatchlist は同じ銘柄が既にウォッチリストに登録済みであることを示します。
	ErrAlreadyInWatchlist = errors.New("instrument already in watchlist")
	// ErrNotInWatchlist は削除対象の銘柄がウォッチリストに存在しないことを示します。
	ErrNotInWatchlist = errors.New("instrument not in watchlist")
)
