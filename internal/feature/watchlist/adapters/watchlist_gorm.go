package adapters

import (
	"context"
	"fmt"
	"time"

	instrumentsadapters "stockboard_backend/internal/feature/instruments/adapters"
	"stockboard_backend/internal/feature/watchlist/domain"
	"stockboard_backend/internal/feature/watchlist/domain/entity"
	"stockboard_backend/internal/feature/watchlist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistEntryModel はウォッチリストのテーブル定義です。
// (user_id, instrument_id) の複合ユニーク制約で重複登録を防ぎます。
type WatchlistEntryModel struct {
	ID           uint                                `gorm:"primaryKey"`
	UserID       string                              `gorm:"size:64;not null;uniqueIndex:uq_watchlist_user_instrument,priority:1"`
	InstrumentID uint                                `gorm:"not null;uniqueIndex:uq_watchlist_user_instrument,priority:2;index"`
	Instrument   instrumentsadapters.InstrumentModel `gorm:"foreignKey:InstrumentID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                           `gorm:"autoCreateTime"`
}

func (WatchlistEntryModel) TableName() string { return "watchlist_entries" }

func (m WatchlistEntryModel) toEntity() entity.Entry {
	return entity.Entry{
		ID:           m.ID,
		UserID:       m.UserID,
		InstrumentID: m.InstrumentID,
		Instrument:   m.Instrument.ToEntity(),
	}
}

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は gorm ベースの WatchlistRepository を返します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// ListByUser は登録順にエントリを返します。銘柄情報は Preload で取得します。
func (r *watchlistGorm) ListByUser(ctx context.Context, userID string) ([]entity.Entry, error) {
	var rows []WatchlistEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Instrument").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	out := make([]entity.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Insert は INSERT ... ON CONFLICT DO NOTHING で登録します。
// 影響行数0は既存の組み合わせとみなします。
func (r *watchlistGorm) Insert(ctx context.Context, userID string, instrumentID uint) (*entity.Entry, error) {
	m := WatchlistEntryModel{UserID: userID, InstrumentID: instrumentID}
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m)
	if res.Error != nil {
		return nil, fmt.Errorf("insert watchlist entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrAlreadyInWatchlist
	}
	e := m.toEntity()
	return &e, nil
}

// Delete は単一の DELETE で削除し、影響行数0なら domain.ErrNotInWatchlist を返します。
func (r *watchlistGorm) Delete(ctx context.Context, userID string, instrumentID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Delete(&WatchlistEntryModel{})
	if res.Error != nil {
		return fmt.Errorf("delete watchlist entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotInWatchlist
	}
	return nil
}

func (r *watchlistGorm) Exists(ctx context.Context, userID string, instrumentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&WatchlistEntryModel{}).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check watchlist entry: %w", err)
	}
	return count > 0, nil
}
