package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockboard_backend/internal/feature/instruments/domain"
	"stockboard_backend/internal/feature/instruments/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockInstrumentUsecase はInstrumentUsecaseインターフェースのモック実装です。
type mockInstrumentUsecase struct {
	ListAllFunc     func(ctx context.Context) ([]entity.Instrument, error)
	SearchFunc      func(ctx context.Context, query string) ([]entity.Instrument, error)
	GetByIDFunc     func(ctx context.Context, id uint) (*entity.Instrument, error)
	GetBySymbolFunc func(ctx context.Context, symbol string) (*entity.Instrument, error)
}

func (m *mockInstrumentUsecase) ListAll(ctx context.Context) ([]entity.Instrument, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockInstrumentUsecase) Search(ctx context.Context, query string) ([]entity.Instrument, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockInstrumentUsecase) GetByID(ctx context.Context, id uint) (*entity.Instrument, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrInstrumentNotFound
}

func (m *mockInstrumentUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	if m.GetBySymbolFunc != nil {
		return m.GetBySymbolFunc(ctx, symbol)
	}
	return nil, domain.ErrInstrumentNotFound
}

var apple = entity.Instrument{ID: 1, Symbol: "AAPL", Name: "Apple Inc.", Price: 189.5}

func newTestRouter(uc InstrumentUsecase) *gin.Engine {
	h := NewInstrumentHandler(uc)
	r := gin.New()
	r.GET("/instruments", h.List)
	r.GET("/instruments/search", h.Search)
	r.GET("/instruments/:id", h.GetByID)
	r.GET("/instruments/symbol/:symbol", h.GetBySymbol)
	return r
}

// TestNewInstrumentHandler はコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewInstrumentHandler(t *testing.T) {
	t.Parallel()

	handler := NewInstrumentHandler(&mockInstrumentUsecase{})
	assert.NotNil(t, handler)
	assert.NotNil(t, handler.uc)
}

// TestInstrumentHandler はエンドポイントごとのステータスとボディをテーブル駆動で検証します。
func TestInstrumentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		uc             *mockInstrumentUsecase
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "list: returns instruments",
			path: "/instruments",
			uc: &mockInstrumentUsecase{ListAllFunc: func(ctx context.Context) ([]entity.Instrument, error) {
				return []entity.Instrument{apple}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"symbol":"AAPL","name":"Apple Inc.","price":189.5}]`,
		},
		{
			name:           "list: nil becomes empty array",
			path:           "/instruments",
			uc:             &mockInstrumentUsecase{},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "list: usecase error",
			path: "/instruments",
			uc: &mockInstrumentUsecase{ListAllFunc: func(ctx context.Context) ([]entity.Instrument, error) {
				return nil, errors.New("database connection failed")
			}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"database connection failed"}`,
		},
		{
			name: "search: passes query through",
			path: "/instruments/search?query=app",
			uc: &mockInstrumentUsecase{SearchFunc: func(ctx context.Context, query string) ([]entity.Instrument, error) {
				if query != "app" {
					return nil, errors.New("unexpected query " + query)
				}
				return []entity.Instrument{apple}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"symbol":"AAPL","name":"Apple Inc.","price":189.5}]`,
		},
		{
			name: "get by id: found",
			path: "/instruments/1",
			uc: &mockInstrumentUsecase{GetByIDFunc: func(ctx context.Context, id uint) (*entity.Instrument, error) {
				return &apple, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"symbol":"AAPL","name":"Apple Inc.","price":189.5}`,
		},
		{
			name:           "get by id: not found",
			path:           "/instruments/42",
			uc:             &mockInstrumentUsecase{},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"instrument not found"}`,
		},
		{
			name:           "get by id: malformed id",
			path:           "/instruments/abc",
			uc:             &mockInstrumentUsecase{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid instrument id"}`,
		},
		{
			name:           "get by id: negative id",
			path:           "/instruments/-1",
			uc:             &mockInstrumentUsecase{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid instrument id"}`,
		},
		{
			name: "get by symbol: found",
			path: "/instruments/symbol/AAPL",
			uc: &mockInstrumentUsecase{GetBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Instrument, error) {
				if symbol == "AAPL" {
					return &apple, nil
				}
				return nil, domain.ErrInstrumentNotFound
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"symbol":"AAPL","name":"Apple Inc.","price":189.5}`,
		},
		{
			name:           "get by symbol: not found",
			path:           "/instruments/symbol/ZZZZ",
			uc:             &mockInstrumentUsecase{},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"instrument not found"}`,
		},
		{
			name: "get by symbol: storage failure",
			path: "/instruments/symbol/AAPL",
			uc: &mockInstrumentUsecase{GetBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Instrument, error) {
				return nil, errors.New("timeout")
			}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"timeout"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(tt.uc)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
