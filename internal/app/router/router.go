// Package router は全エンドポイントを gin.Engine に登録します。
package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	instrumenthandler "stockboard_backend/internal/feature/instruments/transport/handler"
	pricehandler "stockboard_backend/internal/feature/prices/transport/handler"
	watchlisthandler "stockboard_backend/internal/feature/watchlist/transport/handler"
	"stockboard_backend/internal/platform/http/handler"
	"stockboard_backend/internal/platform/http/middleware"
	jwtmw "stockboard_backend/internal/platform/jwt"
)

// Options はルーター全体に関わる設定です。
type Options struct {
	AllowOrigins []string
	JWTSecret    string
	DefaultUser  string
	Logger       *slog.Logger
	// Ready は /readyz のハンドラー。nil なら常に ready を返す
	Ready gin.HandlerFunc
}

// Handlers は各機能のHTTPハンドラーです。
type Handlers struct {
	Instruments *instrumenthandler.InstrumentHandler
	Watchlist   *watchlisthandler.WatchlistHandler
	Prices      *pricehandler.PriceHandler
}

func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Logger, "/healthz", "/readyz"))
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	ready := opts.Ready
	if ready == nil {
		ready = handler.Readiness(nil, time.Second)
	}
	r.GET("/readyz", ready)

	api := r.Group("/api")

	instruments := api.Group("/instruments")
	{
		instruments.GET("", h.Instruments.List)
		instruments.GET("/search", h.Instruments.Search)
		instruments.GET("/symbol/:symbol", h.Instruments.GetBySymbol)
		instruments.GET("/:id", h.Instruments.GetByID)
	}

	prices := api.Group("/prices")
	{
		prices.GET("/supported-periods", h.Prices.SupportedPeriods)
		prices.GET("/providerA/:symbol/period/:period", h.Prices.FetchProviderA)
		prices.GET("/providerB/:symbol", h.Prices.FetchProviderB)
		prices.GET("/external/:source/:symbol", h.Prices.FetchExternal)
		prices.GET("/:instrumentId", h.Prices.GetSeries)
		prices.GET("/:instrumentId/period/:period", h.Prices.GetSeriesForPeriod)
		prices.POST("/:instrumentId/generate-mock-data", h.Prices.GenerateMock)
		prices.GET("/:instrumentId/has-data", h.Prices.HasData)
		prices.DELETE("/:instrumentId", h.Prices.Delete)
	}

	// ユーザーは Bearer トークンの sub、無ければ DefaultUser
	watchlist := api.Group("/watchlist", jwtmw.Identity(opts.JWTSecret, opts.DefaultUser))
	{
		watchlist.GET("", h.Watchlist.List)
		watchlist.POST("", h.Watchlist.Add)
		watchlist.DELETE("/:instrumentId", h.Watchlist.Remove)
		watchlist.GET("/check/:instrumentId", h.Watchlist.Check)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, pricehandler.HeaderSourceError},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
	// ワイルドカードと credentials は併用できない
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
