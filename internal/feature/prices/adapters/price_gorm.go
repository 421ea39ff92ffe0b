package adapters

import (
	"context"
	"fmt"
	"time"

	instrumentsadapters "stockboard_backend/internal/feature/instruments/adapters"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricePointModel は日足テーブルの定義です。date は暦日のみを保持します。
type PricePointModel struct {
	ID           uint                                `gorm:"primaryKey"`
	InstrumentID uint                                `gorm:"not null;index:idx_price_instrument_date,priority:1"`
	Instrument   instrumentsadapters.InstrumentModel `gorm:"foreignKey:InstrumentID;constraint:OnDelete:CASCADE"`
	Date         time.Time                           `gorm:"type:date;not null;index:idx_price_instrument_date,priority:2"`
	Open         float64                             `gorm:"not null"`
	High         float64                             `gorm:"not null"`
	Low          float64                             `gorm:"not null"`
	Close        float64                             `gorm:"not null"`
	Volume       int64                               `gorm:"not null;default:0"`
}

func (PricePointModel) TableName() string {
	return "price_points"
}

func toModel(e entity.PricePoint) PricePointModel {
	return PricePointModel{
		ID:           e.ID,
		InstrumentID: e.InstrumentID,
		Date:         entity.CivilDate(e.Date),
		Open:         e.Open,
		High:         e.High,
		Low:          e.Low,
		Close:        e.Close,
		Volume:       e.Volume,
	}
}

func (m PricePointModel) toEntity() entity.PricePoint {
	return entity.PricePoint{
		ID:           m.ID,
		InstrumentID: m.InstrumentID,
		Symbol:       m.Instrument.Symbol,
		Date:         entity.CivilDate(m.Date),
		Open:         m.Open,
		High:         m.High,
		Low:          m.Low,
		Close:        m.Close,
		Volume:       m.Volume,
	}
}

type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

// NewPriceRepository は gorm ベースの PriceRepository を返します。
func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

func (r *priceGorm) FindByInstrument(ctx context.Context, instrumentID uint) ([]entity.PricePoint, error) {
	return r.find(r.db.WithContext(ctx).Where("price_points.instrument_id = ?", instrumentID))
}

func (r *priceGorm) FindByInstrumentBetween(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.PricePoint, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"price_points.instrument_id = ? AND price_points.date BETWEEN ? AND ?",
		instrumentID, entity.CivilDate(start), entity.CivilDate(end),
	))
}

// find は銘柄を結合してシンボルを埋め、日付昇順で返します。
func (r *priceGorm) find(q *gorm.DB) ([]entity.PricePoint, error) {
	var rows []PricePointModel
	if err := q.Joins("Instrument").
		Order("price_points.date ASC").
		Order("price_points.id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find price points: %w", err)
	}
	out := make([]entity.PricePoint, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Create は1件保存し、採番されたIDを p に書き戻します。
func (r *priceGorm) Create(ctx context.Context, p *entity.PricePoint) error {
	m := toModel(*p)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return fmt.Errorf("create price point: %w", err)
	}
	p.ID = m.ID
	return nil
}

func (r *priceGorm) ExistsByInstrument(ctx context.Context, instrumentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&PricePointModel{}).
		Where("instrument_id = ?", instrumentID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count price points: %w", err)
	}
	return count > 0, nil
}

// DeleteByInstrument は銘柄の全日足を削除します。対象が無くても成功です。
func (r *priceGorm) DeleteByInstrument(ctx context.Context, instrumentID uint) error {
	if err := r.db.WithContext(ctx).
		Where("instrument_id = ?", instrumentID).
		Delete(&PricePointModel{}).Error; err != nil {
		return fmt.Errorf("delete price points: %w", err)
	}
	return nil
}
