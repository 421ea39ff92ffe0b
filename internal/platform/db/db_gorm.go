package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	instrumentsadapters "stockboard_backend/internal/feature/instruments/adapters"
	pricesadapters "stockboard_backend/internal/feature/prices/adapters"
	watchlistadapters "stockboard_backend/internal/feature/watchlist/adapters"
)

// Opener は DSN から gorm.DB を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

var retryInterval = 3 * time.Second

// BuildDSN は PostgreSQL 用の key=value 形式の DSN を組み立てます。
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}
	parts := []string{
		"host=" + host,
		"user=" + cfg.User,
		"password=" + cfg.Password,
		"dbname=" + cfg.Name,
	}
	if port != "" {
		parts = append(parts, "port="+port)
	}
	if cfg.SSLMode != "" {
		parts = append(parts, "sslmode="+cfg.SSLMode)
	}
	parts = append(parts, "TimeZone=UTC")
	return strings.Join(parts, " ")
}

// ValidateDSN は接続前に DSN を pgx で解析し、書式の誤りを早期に検出します。
func ValidateDSN(dsn string) error {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}
	return nil
}

// ConnectWithRetry は timeout に達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retryIn", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は cfg.Driver に応じて PostgreSQL か SQLite に接続し、必要ならマイグレーションを実行します。
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel))}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		dsn := BuildDSN(cfg)
		if err := ValidateDSN(dsn); err != nil {
			return nil, err
		}
		db, err = ConnectWithRetry(dsn, cfg.ConnTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)

	if cfg.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はすべてのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrate: nil db")
	}
	if err := db.AutoMigrate(
		&instrumentsadapters.InstrumentModel{},
		&watchlistadapters.WatchlistEntryModel{},
		&pricesadapters.PricePointModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	slog.Info("database migrated")
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
