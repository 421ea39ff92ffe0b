package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stockboard_backend/internal/feature/instruments/domain"
	"stockboard_backend/internal/feature/instruments/domain/entity"
	"stockboard_backend/internal/feature/instruments/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// InstrumentUsecase は銘柄ディレクトリに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InstrumentUsecase interface {
	ListAll(ctx context.Context) ([]entity.Instrument, error)
	Search(ctx context.Context, query string) ([]entity.Instrument, error)
	GetByID(ctx context.Context, id uint) (*entity.Instrument, error)
	GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error)
}

// InstrumentHandler は銘柄に関するHTTPリクエストを処理します。
type InstrumentHandler struct {
	uc InstrumentUsecase
}

// NewInstrumentHandler は新しい InstrumentHandler を作成します。
func NewInstrumentHandler(uc InstrumentUsecase) *InstrumentHandler {
	return &InstrumentHandler{uc: uc}
}

// List は全銘柄を返します。
func (h *InstrumentHandler) List(c *gin.Context) {
	instruments, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(instruments))
}

// Search は query パラメータでシンボル・名称を部分一致検索します。
// query が空の場合は全件を返します。
func (h *InstrumentHandler) Search(c *gin.Context) {
	instruments, err := h.uc.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(instruments))
}

// GetByID は :id の銘柄を返します。存在しない場合は404。
func (h *InstrumentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instrument id"})
		return
	}
	inst, err := h.uc.GetByID(c.Request.Context(), uint(id))
	h.respondOne(c, inst, err)
}

// GetBySymbol は :symbol に完全一致する銘柄を返します。
func (h *InstrumentHandler) GetBySymbol(c *gin.Context) {
	inst, err := h.uc.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	h.respondOne(c, inst, err)
}

func (h *InstrumentHandler) respondOne(c *gin.Context, inst *entity.Instrument, err error) {
	if errors.Is(err, domain.ErrInstrumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItem(*inst))
}

func toItem(i entity.Instrument) dto.InstrumentItem {
	return dto.InstrumentItem{ID: i.ID, Symbol: i.Symbol, Name: i.Name, Price: i.Price}
}

func toItems(xs []entity.Instrument) []dto.InstrumentItem {
	out := make([]dto.InstrumentItem, 0, len(xs))
	for _, x := range xs {
		out = append(out, toItem(x))
	}
	return out
}
