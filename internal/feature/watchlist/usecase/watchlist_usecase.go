package usecase

import (
	"context"

	instrument "stockboard_backend/internal/feature/instruments/domain/entity"
	"stockboard_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストの永続化を抽象化します。
// Insert は (userID, instrumentID) が既に存在する場合 domain.ErrAlreadyInWatchlist を、
// Delete は対象が存在しない場合 domain.ErrNotInWatchlist を返すこと。
type WatchlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Entry, error)
	Insert(ctx context.Context, userID string, instrumentID uint) (*entity.Entry, error)
	Delete(ctx context.Context, userID string, instrumentID uint) error
	Exists(ctx context.Context, userID string, instrumentID uint) (bool, error)
}

// InstrumentFinder は登録対象の銘柄の存在確認に使います。
type InstrumentFinder interface {
	FindByID(ctx context.Context, id uint) (*instrument.Instrument, error)
}

// WatchlistUsecase はユーザーごとのウォッチリスト操作を提供します。
type WatchlistUsecase struct {
	repo        WatchlistRepository
	instruments InstrumentFinder
}

// NewWatchlistUsecase は新しい WatchlistUsecase を作成します。
func NewWatchlistUsecase(repo WatchlistRepository, instruments InstrumentFinder) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, instruments: instruments}
}

// List は userID のウォッチリストを銘柄情報付きで返します。
func (u *WatchlistUsecase) List(ctx context.Context, userID string) ([]entity.Entry, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Add は銘柄をウォッチリストに追加します。
// 銘柄が存在しなければ instruments の domain.ErrInstrumentNotFound を、
// 登録済みなら domain.ErrAlreadyInWatchlist を返します。
func (u *WatchlistUsecase) Add(ctx context.Context, userID string, instrumentID uint) (*entity.Entry, error) {
	inst, err := u.instruments.FindByID(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	e, err := u.repo.Insert(ctx, userID, instrumentID)
	if err != nil {
		return nil, err
	}
	e.Instrument = *inst
	return e, nil
}

// Remove は銘柄をウォッチリストから削除します。
func (u *WatchlistUsecase) Remove(ctx context.Context, userID string, instrumentID uint) error {
	return u.repo.Delete(ctx, userID, instrumentID)
}

// Contains は銘柄が userID のウォッチリストにあるかを返します。
func (u *WatchlistUsecase) Contains(ctx context.Context, userID string, instrumentID uint) (bool, error) {
	return u.repo.Exists(ctx, userID, instrumentID)
}
