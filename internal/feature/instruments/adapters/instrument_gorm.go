// Package adapters はinstrumentsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"stockboard_backend/internal/feature/instruments/domain"
	"stockboard_backend/internal/feature/instruments/domain/entity"
	"stockboard_backend/internal/feature/instruments/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InstrumentModel は instruments テーブルの行を表します。
// watchlist・prices の各モデルから外部キーで参照されます。
type InstrumentModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:10;not null;uniqueIndex"`
	Name      string    `gorm:"size:100;not null"`
	Price     float64   `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (InstrumentModel) TableName() string {
	return "instruments"
}

// ToEntity はモデルをドメインエンティティに変換します。
func (m InstrumentModel) ToEntity() entity.Instrument {
	return entity.Instrument{
		ID:     m.ID,
		Symbol: m.Symbol,
		Name:   m.Name,
		Price:  m.Price,
	}
}

// instrumentGorm はInstrumentRepositoryインターフェースのGORM実装です。
type instrumentGorm struct {
	db *gorm.DB
}

var _ usecase.InstrumentRepository = (*instrumentGorm)(nil)

// NewInstrumentRepository は指定されたDB接続でinstrumentGormリポジトリの新しいインスタンスを生成します。
func NewInstrumentRepository(db *gorm.DB) *instrumentGorm {
	return &instrumentGorm{db: db}
}

// List はID順にすべての銘柄を返します。
func (r *instrumentGorm) List(ctx context.Context) ([]entity.Instrument, error) {
	var rows []InstrumentModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Search はシンボルまたは名称に query を含む銘柄を大文字小文字を区別せずに返します。
// query 中の % と _ はワイルドカードではなく文字として扱います。
func (r *instrumentGorm) Search(ctx context.Context, query string) ([]entity.Instrument, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var rows []InstrumentModel
	if err := r.db.WithContext(ctx).
		Where(`LOWER(symbol) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByID はIDで銘柄を取得します。存在しない場合は domain.ErrInstrumentNotFound を返します。
func (r *instrumentGorm) FindByID(ctx context.Context, id uint) (*entity.Instrument, error) {
	var m InstrumentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInstrumentNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// FindBySymbol はシンボルの完全一致（大文字小文字を区別）で銘柄を取得します。
func (r *instrumentGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	var m InstrumentModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInstrumentNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// UpsertBySymbol はシンボルをキーに銘柄を挿入、既存の場合は名称と価格を更新します。
func (r *instrumentGorm) UpsertBySymbol(ctx context.Context, instruments []entity.Instrument) error {
	if len(instruments) == 0 {
		return nil
	}
	ms := make([]InstrumentModel, 0, len(instruments))
	for _, e := range instruments {
		ms = append(ms, InstrumentModel{Symbol: e.Symbol, Name: e.Name, Price: e.Price})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "updated_at"}),
	}).Create(&ms).Error
}

func toEntities(rows []InstrumentModel) []entity.Instrument {
	out := make([]entity.Instrument, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out
}

// escapeLike は LIKE のメタ文字をエスケープします。
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
