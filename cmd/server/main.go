package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockboard_backend/internal/app/config"
	"stockboard_backend/internal/app/di"
	"stockboard_backend/internal/app/router"
	instrumenthandler "stockboard_backend/internal/feature/instruments/transport/handler"
	pricehandler "stockboard_backend/internal/feature/prices/transport/handler"
	watchlisthandler "stockboard_backend/internal/feature/watchlist/transport/handler"
	platformdb "stockboard_backend/internal/platform/db"
	"stockboard_backend/internal/platform/http/handler"
	"stockboard_backend/internal/platform/logger"
	platformredis "stockboard_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env は任意。無ければ環境変数のみで動く
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	logCfg, err := logger.LoadConfig()
	if err != nil {
		return err
	}
	logCloser, err := logger.Setup(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; bearer tokens will be rejected and all requests use the default user")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg, err := platformdb.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	db, err := platformdb.Open(dbCfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis（任意）
	redisCfg, err := platformredis.LoadConfig()
	if err != nil {
		return err
	}
	rdb, err := platformredis.NewRedisClient(ctx, redisCfg)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	checks := map[string]handler.Check{"database": sqlDB.PingContext}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	c := di.NewContainer(db, rdb, cfg.CacheTTL)
	if err := di.RegisterPriceSources(c.Prices); err != nil {
		return err
	}

	engine := router.NewRouter(
		router.Options{
			AllowOrigins: cfg.CORSAllowOrigins,
			JWTSecret:    cfg.JWTSecret,
			DefaultUser:  cfg.DefaultUser,
			Logger:       slog.Default(),
			Ready:        handler.Readiness(checks, 2*time.Second),
		},
		router.Handlers{
			Instruments: instrumenthandler.NewInstrumentHandler(c.Instruments),
			Watchlist:   watchlisthandler.NewWatchlistHandler(c.Watchlist),
			Prices:      pricehandler.NewPriceHandler(c.Prices, time.Now),
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr, "sources", c.Prices.SourceNames())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
