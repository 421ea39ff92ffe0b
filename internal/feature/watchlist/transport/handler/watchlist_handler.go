package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	instrumentdomain "stockboard_backend/internal/feature/instruments/domain"
	instrumentdto "stockboard_backend/internal/feature/instruments/transport/http/dto"
	"stockboard_backend/internal/feature/watchlist/domain"
	"stockboard_backend/internal/feature/watchlist/domain/entity"
	"stockboard_backend/internal/feature/watchlist/transport/http/dto"
	jwtmw "stockboard_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// WatchlistUsecase はウォッチリストに関するユースケースのインターフェースです。
type WatchlistUsecase interface {
	List(ctx context.Context, userID string) ([]entity.Entry, error)
	Add(ctx context.Context, userID string, instrumentID uint) (*entity.Entry, error)
	Remove(ctx context.Context, userID string, instrumentID uint) error
	Contains(ctx context.Context, userID string, instrumentID uint) (bool, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
// ユーザーIDは jwtmw.Identity ミドルウェアが gin.Context に設定したものを使います。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List はユーザーのウォッチリストを返します。
func (h *WatchlistHandler) List(c *gin.Context) {
	entries, err := h.uc.List(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, toItem(e))
	}
	c.JSON(http.StatusOK, out)
}

// Add は {"instrumentId": n} を受け取りウォッチリストに追加します。
// ボディ不正、銘柄が存在しない、登録済みの場合は400を返します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instrumentId is required"})
		return
	}
	user := jwtmw.UserID(c)
	e, err := h.uc.Add(c.Request.Context(), user, *req.InstrumentID)
	switch {
	case errors.Is(err, instrumentdomain.ErrInstrumentNotFound), errors.Is(err, domain.ErrAlreadyInWatchlist):
		slog.Info("watchlist add rejected", "user", user, "instrument_id", *req.InstrumentID, "reason", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItem(*e))
}

// Remove は :instrumentId をウォッチリストから削除します。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	err := h.uc.Remove(c.Request.Context(), jwtmw.UserID(c), id)
	switch {
	case errors.Is(err, domain.ErrNotInWatchlist):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// Check は :instrumentId がウォッチリストにあるかを {"inWatchlist": bool} で返します。
func (h *WatchlistHandler) Check(c *gin.Context) {
	id, ok := parseInstrumentID(c)
	if !ok {
		return
	}
	in, err := h.uc.Contains(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CheckResponse{InWatchlist: in})
}

func parseInstrumentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("instrumentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instrument id"})
		return 0, false
	}
	return uint(id), true
}

func toItem(e entity.Entry) dto.WatchlistItem {
	return dto.WatchlistItem{
		ID:           e.ID,
		InstrumentID: e.InstrumentID,
		Instrument: instrumentdto.InstrumentItem{
			ID:     e.Instrument.ID,
			Symbol: e.Instrument.Symbol,
			Name:   e.Instrument.Name,
			Price:  e.Instrument.Price,
		},
	}
}
