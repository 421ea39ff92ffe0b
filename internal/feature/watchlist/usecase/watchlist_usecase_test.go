package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	instrumentdomain "stockboard_backend/internal/feature/instruments/domain"
	instrument "stockboard_backend/internal/feature/instruments/domain/entity"
	"stockboard_backend/internal/feature/watchlist/domain"
	"stockboard_backend/internal/feature/watchlist/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	user string
	id   uint
}

// memoryWatchlistRepository はテスト用のインメモリ実装です。
// 実DBの複合ユニーク制約と同じく、重複する組み合わせを拒否します。
type memoryWatchlistRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   []entity.Entry
	index  map[pair]bool
}

func newMemoryRepo() *memoryWatchlistRepository {
	return &memoryWatchlistRepository{index: map[pair]bool{}}
}

func (m *memoryWatchlistRepository) ListByUser(ctx context.Context, userID string) ([]entity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Entry{}
	for _, e := range m.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryWatchlistRepository) Insert(ctx context.Context, userID string, instrumentID uint) (*entity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pair{userID, instrumentID}
	if m.index[k] {
		return nil, domain.ErrAlreadyInWatchlist
	}
	m.index[k] = true
	m.nextID++
	e := entity.Entry{ID: m.nextID, UserID: userID, InstrumentID: instrumentID}
	m.rows = append(m.rows, e)
	return &e, nil
}

func (m *memoryWatchlistRepository) Delete(ctx context.Context, userID string, instrumentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pair{userID, instrumentID}
	if !m.index[k] {
		return domain.ErrNotInWatchlist
	}
	delete(m.index, k)
	for i, e := range m.rows {
		if e.UserID == userID && e.InstrumentID == instrumentID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryWatchlistRepository) Exists(ctx context.Context, userID string, instrumentID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index[pair{userID, instrumentID}], nil
}

// mockInstrumentFinder はInstrumentFinderインターフェースのモック実装です。
type mockInstrumentFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*instrument.Instrument, error)
}

func (m *mockInstrumentFinder) FindByID(ctx context.Context, id uint) (*instrument.Instrument, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, instrumentdomain.ErrInstrumentNotFound
}

func knownInstruments() *mockInstrumentFinder {
	return &mockInstrumentFinder{FindByIDFunc: func(ctx context.Context, id uint) (*instrument.Instrument, error) {
		switch id {
		case 1:
			return &instrument.Instrument{ID: 1, Symbol: "AAPL", Name: "Apple Inc.", Price: 189.5}, nil
		case 2:
			return &instrument.Instrument{ID: 2, Symbol: "MSFT", Name: "Microsoft Corporation", Price: 410.2}, nil
		}
		return nil, instrumentdomain.ErrInstrumentNotFound
	}}
}

// TestWatchlistUsecase_Add は追加の成功・重複・銘柄未検出を検証します。
func TestWatchlistUsecase_Add(t *testing.T) {
	t.Parallel()

	uc := NewWatchlistUsecase(newMemoryRepo(), knownInstruments())
	ctx := context.Background()

	e, err := uc.Add(ctx, "guest", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), e.InstrumentID)
	assert.Equal(t, "AAPL", e.Instrument.Symbol, "returned entry carries the instrument snapshot")

	_, err = uc.Add(ctx, "guest", 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyInWatchlist)

	_, err = uc.Add(ctx, "guest", 99)
	assert.ErrorIs(t, err, instrumentdomain.ErrInstrumentNotFound)

	list, err := uc.List(ctx, "guest")
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed adds must not create entries")
}

// TestWatchlistUsecase_AddThenRemoveRestoresState は追加→削除で元の状態に戻ることを検証します。
func TestWatchlistUsecase_AddThenRemoveRestoresState(t *testing.T) {
	t.Parallel()

	uc := NewWatchlistUsecase(newMemoryRepo(), knownInstruments())
	ctx := context.Background()

	_, err := uc.Add(ctx, "guest", 2)
	require.NoError(t, err)
	before, err := uc.List(ctx, "guest")
	require.NoError(t, err)
	inBefore, err := uc.Contains(ctx, "guest", 1)
	require.NoError(t, err)

	_, err = uc.Add(ctx, "guest", 1)
	require.NoError(t, err)
	in, err := uc.Contains(ctx, "guest", 1)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, uc.Remove(ctx, "guest", 1))

	after, err := uc.List(ctx, "guest")
	require.NoError(t, err)
	inAfter, err := uc.Contains(ctx, "guest", 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, inBefore, inAfter)

	assert.ErrorIs(t, uc.Remove(ctx, "guest", 1), domain.ErrNotInWatchlist)
}

// TestWatchlistUsecase_Add_ConcurrentSingleSuccess は同時追加で成功が1件だけであることを検証します。
func TestWatchlistUsecase_Add_ConcurrentSingleSuccess(t *testing.T) {
	t.Parallel()

	uc := NewWatchlistUsecase(newMemoryRepo(), knownInstruments())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Add(ctx, "guest", 2)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyInWatchlist)
	}
	assert.Equal(t, 1, ok)
}

// TestWatchlistUsecase_RepositoryErrors はリポジトリのエラーがそのまま伝播することを検証します。
func TestWatchlistUsecase_RepositoryErrors(t *testing.T) {
	t.Parallel()

	finder := &mockInstrumentFinder{FindByIDFunc: func(ctx context.Context, id uint) (*instrument.Instrument, error) {
		return nil, errors.New("connection refused")
	}}
	uc := NewWatchlistUsecase(newMemoryRepo(), finder)

	_, err := uc.Add(context.Background(), "guest", 1)
	assert.EqualError(t, err, "connection refused")
}
