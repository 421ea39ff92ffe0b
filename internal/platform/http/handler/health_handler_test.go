package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)
	r.OPTIONS("/healthz", Health)
	r.POST("/healthz", Health)
	return r
}

// TestHealth はメソッドごとのステータスとキャッシュ抑止ヘッダーを検証します。
func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method         string
		expectedStatus int
		expectBody     bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
		{http.MethodPost, http.StatusOK, true},
	}

	router := setupRouter()

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if !tt.expectBody {
				assert.Zero(t, w.Body.Len())
				return
			}
			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "ok", response["status"])
		})
	}
}

// TestReadiness は依存先の疎通結果に応じて 200 / 503 を返すことを検証します。
func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	tests := []struct {
		name           string
		checks         map[string]Check
		expectedStatus int
		expectedState  string
		expectedChecks map[string]string
	}{
		{
			name:           "all healthy",
			checks:         map[string]Check{"database": ok, "redis": ok},
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
			expectedChecks: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name:           "redis down",
			checks:         map[string]Check{"database": ok, "redis": down},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unavailable",
			expectedChecks: map[string]string{"database": "ok", "redis": "connection refused"},
		},
		{
			name:           "timeout",
			checks:         map[string]Check{"database": slow},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unavailable",
			expectedChecks: map[string]string{"database": context.DeadlineExceeded.Error()},
		},
		{
			name:           "no dependencies",
			checks:         map[string]Check{},
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
			expectedChecks: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/readyz", Readiness(tt.checks, 50*time.Millisecond))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body.Status)
			assert.Equal(t, tt.expectedChecks, body.Checks)
		})
	}
}
