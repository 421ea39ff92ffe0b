// Package usecase implements the business logic for instrument lookup and search.
package usecase

import (
	"context"
	"strings"

	"stockboard_backend/internal/feature/instruments/domain/entity"
)

// InstrumentRepository abstracts the persistence layer for instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	List(ctx context.Context) ([]entity.Instrument, error)
	Search(ctx context.Context, query string) ([]entity.Instrument, error)
	FindByID(ctx context.Context, id uint) (*entity.Instrument, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error)
	UpsertBySymbol(ctx context.Context, instruments []entity.Instrument) error
}

// InstrumentUsecase provides business logic for instrument operations.
type InstrumentUsecase struct {
	repo InstrumentRepository
}

// NewInstrumentUsecase creates a new InstrumentUsecase with the given repository.
func NewInstrumentUsecase(r InstrumentRepository) *InstrumentUsecase {
	return &InstrumentUsecase{repo: r}
}

// ListAll returns every instrument in the store.
func (u *InstrumentUsecase) ListAll(ctx context.Context) ([]entity.Instrument, error) {
	return u.repo.List(ctx)
}

// Search returns instruments whose symbol or name contains query, ignoring case.
// A blank query behaves like ListAll.
func (u *InstrumentUsecase) Search(ctx context.Context, query string) ([]entity.Instrument, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return u.repo.List(ctx)
	}
	return u.repo.Search(ctx, q)
}

// GetByID returns the instrument with the given id, or domain.ErrInstrumentNotFound.
func (u *InstrumentUsecase) GetByID(ctx context.Context, id uint) (*entity.Instrument, error) {
	return u.repo.FindByID(ctx, id)
}

// GetBySymbol returns the instrument whose symbol matches exactly (case-sensitive),
// or domain.ErrInstrumentNotFound.
func (u *InstrumentUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	return u.repo.FindBySymbol(ctx, symbol)
}

// Seed inserts or refreshes instruments keyed by symbol.
func (u *InstrumentUsecase) Seed(ctx context.Context, instruments []entity.Instrument) error {
	return u.repo.UpsertBySymbol(ctx, instruments)
}
