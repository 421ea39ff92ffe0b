package db

import (
	"fmt"
	"time"

	"stockboard_backend/internal/shared/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver       string // postgres | sqlite
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL のインスタンス接続名。設定時は Host/Port より優先
	SQLitePath   string
	ConnTimeout  time.Duration
	Migrate      bool
	LogLevel     string // silent | error | warn | info
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() (Config, error) {
	timeout, err := envconfig.Duration("DB_CONNECT_TIMEOUT", 60*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("db config: %w", err)
	}
	migrate, err := envconfig.Bool("RUN_MIGRATIONS", false)
	if err != nil {
		return Config{}, fmt.Errorf("db config: %w", err)
	}
	return Config{
		Driver:       envconfig.String("DB_DRIVER", DriverPostgres),
		User:         envconfig.String("DB_USER", ""),
		Password:     envconfig.String("DB_PASSWORD", ""),
		Name:         envconfig.String("DB_NAME", ""),
		Host:         envconfig.String("DB_HOST", "localhost"),
		Port:         envconfig.String("DB_PORT", "5432"),
		SSLMode:      envconfig.String("DB_SSLMODE", "disable"),
		InstanceName: envconfig.String("INSTANCE_CONNECTION_NAME", ""),
		SQLitePath:   envconfig.String("SQLITE_PATH", "stockboard.db"),
		ConnTimeout:  timeout,
		Migrate:      migrate,
		LogLevel:     envconfig.String("DB_LOG_LEVEL", "warn"),
	}, nil
}
