// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockboard_backend/internal/api"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/transport/http/dto"
	"stockboard_backend/internal/feature/prices/usecase"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultMockDays はモック生成の既定日数です。
	DefaultMockDays = 365
	// MaxMockDays はモック生成で受け付ける最大日数です。
	MaxMockDays = 3650
	// DefaultExternalRange は range 未指定時の外部取得期間です。
	DefaultExternalRange = "1mo"
	// HeaderSourceError は外部取得が失敗した理由を返すレスポンスヘッダーです。
	HeaderSourceError = "X-Price-Source-Error"

	// SourceProviderA / SourceProviderB は固定ルートが使う外部ソース名です。
	SourceProviderA = "yahoo"
	SourceProviderB = "alphavantage"
)

// PriceUsecase は株価履歴のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PriceUsecase interface {
	SupportedPeriods() []string
	GetSeries(ctx context.Context, instrumentID uint) ([]entity.PricePoint, error)
	GetSeriesForPeriod(ctx context.Context, instrumentID uint, period string, today time.Time) ([]entity.PricePoint, error)
	GenerateMockSeries(ctx context.Context, instrumentID uint, days int, today time.Time) (int, error)
	HasSeries(ctx context.Context, instrumentID uint) (bool, error)
	DeleteSeries(ctx context.Context, instrumentID uint) error
	FetchExternal(ctx context.Context, source string, req entity.SourceRequest) usecase.FetchResult
}

// PriceHandler は株価履歴のHTTPリクエストを処理します。
type PriceHandler struct {
	uc  PriceUsecase
	now func() time.Time
}

// NewPriceHandler は PriceHandler を作成します。now が nil の場合は time.Now を使います。
func NewPriceHandler(uc PriceUsecase, now func() time.Time) *PriceHandler {
	if now == nil {
		now = time.Now
	}
	return &PriceHandler{uc: uc, now: now}
}

// SupportedPeriods は期間トークンの一覧を返します。
func (h *PriceHandler) SupportedPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, h.uc.SupportedPeriods())
}

// GetSeries は保存済みの全履歴を返します。
//
// エンドポイント例:
// GET /api/prices/:instrumentId
func (h *PriceHandler) GetSeries(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	points, err := h.uc.GetSeries(c.Request.Context(), id)
	if err != nil {
		internalError(c, "get price series", id, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(points))
}

// GetSeriesForPeriod は期間で絞り込んだ履歴を返します。
//
// エンドポイント例:
// GET /api/prices/:instrumentId/period/1Y
func (h *PriceHandler) GetSeriesForPeriod(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	points, err := h.uc.GetSeriesForPeriod(c.Request.Context(), id, c.Param("period"), h.now())
	if err != nil {
		internalError(c, "get price series for period", id, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(points))
}

// GenerateMock はモックの日足を生成して保存します。
//
// エンドポイント例:
// POST /api/prices/:instrumentId/generate-mock-data?days=365
func (h *PriceHandler) GenerateMock(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	days := DefaultMockDays
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > MaxMockDays {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "days must be an integer between 0 and " + strconv.Itoa(MaxMockDays)})
			return
		}
		days = n
	}
	n, err := h.uc.GenerateMockSeries(c.Request.Context(), id, days, h.now())
	if err != nil {
		internalError(c, "generate mock prices", id, err)
		return
	}
	c.JSON(http.StatusOK, dto.GenerateResponse{Message: "mock price data generated", Generated: n})
}

// HasData は保存済み履歴の有無を真偽値そのもので返します。
func (h *PriceHandler) HasData(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	has, err := h.uc.HasSeries(c.Request.Context(), id)
	if err != nil {
		internalError(c, "check price series", id, err)
		return
	}
	c.JSON(http.StatusOK, has)
}

// Delete は銘柄の履歴を全削除します。
func (h *PriceHandler) Delete(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteSeries(c.Request.Context(), id); err != nil {
		internalError(c, "delete price series", id, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "price data deleted"})
}

// FetchProviderA は provider A から :symbol の日足を取得します。保存はしません。
//
// エンドポイント例:
// GET /api/prices/providerA/AAPL/period/1y
func (h *PriceHandler) FetchProviderA(c *gin.Context) {
	h.fetch(c, SourceProviderA, entity.SourceRequest{Symbol: c.Param("symbol"), Range: c.Param("period")})
}

// FetchProviderB は provider B から :symbol の日足を取得します。apiKey 未指定時は設定値を使います。
//
// エンドポイント例:
// GET /api/prices/providerB/IBM?apiKey=demo
func (h *PriceHandler) FetchProviderB(c *gin.Context) {
	h.fetch(c, SourceProviderB, entity.SourceRequest{Symbol: c.Param("symbol"), APIKey: c.Query("apiKey")})
}

// FetchExternal は登録済みの任意の外部ソースから取得します。
//
// エンドポイント例:
// GET /api/prices/external/twelvedata/AAPL?range=3mo
func (h *PriceHandler) FetchExternal(c *gin.Context) {
	h.fetch(c, c.Param("source"), entity.SourceRequest{
		Symbol: c.Param("symbol"),
		Range:  c.DefaultQuery("range", DefaultExternalRange),
		APIKey: c.Query("apiKey"),
	})
}

// fetch は外部取得を常に200の配列で返し、失敗時は理由をヘッダーに載せます。
func (h *PriceHandler) fetch(c *gin.Context, source string, req entity.SourceRequest) {
	res := h.uc.FetchExternal(c.Request.Context(), source, req)
	if res.Err != nil {
		c.Header(HeaderSourceError, sourceErrorReason(res.Err))
	}
	c.JSON(http.StatusOK, toResponses(res.Points))
}

// sourceErrorReason はラップの最も内側のエラー（ドメインのセンチネル）を理由として返します。
func sourceErrorReason(err error) string {
	var msg string
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg = e.Error()
	}
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
}

func parseInstrumentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("instrumentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid instrument id"})
		return 0, false
	}
	return uint(id), true
}

func internalError(c *gin.Context, op string, id uint, err error) {
	slog.Error("price request failed", "op", op, "instrument_id", id, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}

func toResponses(points []entity.PricePoint) []dto.PricePointResponse {
	out := make([]dto.PricePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PricePointResponse{
			ID:           p.ID,
			InstrumentID: p.InstrumentID,
			Symbol:       p.Symbol,
			Date:         p.Date.UTC().Format("2006-01-02"),
			Open:         p.Open,
			High:         p.High,
			Low:          p.Low,
			Close:        p.Close,
			Volume:       p.Volume,
		})
	}
	return out
}
