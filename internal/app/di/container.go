// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	instrumentsadapters "stockboard_backend/internal/feature/instruments/adapters"
	instrumentsusecase "stockboard_backend/internal/feature/instruments/usecase"
	pricesadapters "stockboard_backend/internal/feature/prices/adapters"
	pricesusecase "stockboard_backend/internal/feature/prices/usecase"
	watchlistadapters "stockboard_backend/internal/feature/watchlist/adapters"
	watchlistusecase "stockboard_backend/internal/feature/watchlist/usecase"
	"stockboard_backend/internal/platform/cache"
)

// Container はユースケース一式です。cmd/server と cmd/stockctl が共有します。
type Container struct {
	Instruments *instrumentsusecase.InstrumentUsecase
	Watchlist   *watchlistusecase.WatchlistUsecase
	Prices      *pricesusecase.PriceUsecase
}

// NewPriceRepository creates a PriceRepository implementation.
// If Redis is available, reads are cached in Redis; otherwise the gorm repository is used directly.
func NewPriceRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) pricesusecase.PriceRepository {
	repo := pricesadapters.NewPriceRepository(db)
	if rdb != nil {
		return cache.NewCachingPriceRepository(rdb, ttl, repo, "prices")
	}
	return repo
}

// NewContainer はリポジトリとユースケースを組み立てます。外部価格ソースは登録しません（RegisterPriceSources を参照）。
func NewContainer(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *Container {
	instrumentRepo := instrumentsadapters.NewInstrumentRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	priceRepo := NewPriceRepository(rdb, db, cacheTTL)

	return &Container{
		Instruments: instrumentsusecase.NewInstrumentUsecase(instrumentRepo),
		Watchlist:   watchlistusecase.NewWatchlistUsecase(watchlistRepo, instrumentRepo),
		Prices:      pricesusecase.NewPriceUsecase(priceRepo, instrumentRepo),
	}
}
