package adapters

import (
	"context"
	"testing"

	"stockboard_backend/internal/feature/instruments/domain"
	"stockboard_backend/internal/feature/instruments/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため接続を1本に固定
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&InstrumentModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedInstrument はテスト用の銘柄データを作成します。
func seedInstrument(t *testing.T, db *gorm.DB, symbol, name string, price float64) *InstrumentModel {
	t.Helper()

	m := &InstrumentModel{Symbol: symbol, Name: name, Price: price}
	require.NoError(t, db.Create(m).Error, "failed to seed instrument")
	return m
}

func seedDefaults(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedInstrument(t, db, "AAPL", "Apple Inc.", 189.5)
	seedInstrument(t, db, "MSFT", "Microsoft Corporation", 410.2)
	seedInstrument(t, db, "2330.TW", "Taiwan Semiconductor", 980)
	seedInstrument(t, db, "GOOGL", "Alphabet Inc. Class A", 171.3)
}

func symbolsOf(xs []entity.Instrument) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.Symbol)
	}
	return out
}

func TestNewInstrumentRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewInstrumentRepository(db)

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

func TestInstrumentGorm_List(t *testing.T) {
	t.Parallel()

	t.Run("empty store returns empty slice", func(t *testing.T) {
		t.Parallel()
		repo := NewInstrumentRepository(setupTestDB(t))

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("returns all instruments ordered by id", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		seedDefaults(t, db)
		repo := NewInstrumentRepository(db)

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT", "2330.TW", "GOOGL"}, symbolsOf(got))
	})
}

func TestInstrumentGorm_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "matches symbol ignoring case", query: "aapl", expected: []string{"AAPL"}},
		{name: "matches name ignoring case", query: "SEMICONDUCTOR", expected: []string{"2330.TW"}},
		{name: "matches substring in symbol or name", query: "o", expected: []string{"MSFT", "2330.TW", "GOOGL"}},
		{name: "matches dot literally in symbol", query: ".tw", expected: []string{"2330.TW"}},
		{name: "percent is not a wildcard", query: "%", expected: []string{}},
		{name: "underscore is not a wildcard", query: "_", expected: []string{}},
		{name: "no match", query: "tesla", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := setupTestDB(t)
			seedDefaults(t, db)
			repo := NewInstrumentRepository(db)

			got, err := repo.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, symbolsOf(got))
		})
	}
}

func TestInstrumentGorm_FindByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seeded := seedInstrument(t, db, "AAPL", "Apple Inc.", 189.5)
	repo := NewInstrumentRepository(db)

	got, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Instrument{ID: seeded.ID, Symbol: "AAPL", Name: "Apple Inc.", Price: 189.5}, *got)

	_, err = repo.FindByID(context.Background(), seeded.ID+100)
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
}

func TestInstrumentGorm_FindBySymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedInstrument(t, db, "AAPL", "Apple Inc.", 189.5)
	repo := NewInstrumentRepository(db)

	got, err := repo.FindBySymbol(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", got.Name)

	// 完全一致・大文字小文字を区別
	_, err = repo.FindBySymbol(context.Background(), "aapl")
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)

	_, err = repo.FindBySymbol(context.Background(), "AAP")
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
}

func TestInstrumentGorm_UpsertBySymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedInstrument(t, db, "AAPL", "Apple", 100)
	repo := NewInstrumentRepository(db)

	err := repo.UpsertBySymbol(context.Background(), []entity.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 189.5},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Price: 120.1},
	})
	require.NoError(t, err)

	var count int64
	db.Model(&InstrumentModel{}).Count(&count)
	assert.Equal(t, int64(2), count, "existing symbol should be updated, not duplicated")

	got, err := repo.FindBySymbol(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", got.Name)
	assert.Equal(t, 189.5, got.Price)

	assert.NoError(t, repo.UpsertBySymbol(context.Background(), nil))
}
