package redis

import (
	"fmt"
	"time"

	"stockboard_backend/internal/shared/envconfig"
)

// Config は Redis 接続設定です。Host が空の場合はキャッシュを使いません。
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Addr は host:port を返します。
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Enabled は接続先が設定されているかどうかを返します。
func (c Config) Enabled() bool {
	return c.Host != ""
}

// LoadConfig は環境変数から Redis 設定を読み込みます。
func LoadConfig() (Config, error) {
	db, err := envconfig.Int("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("redis config: %w", err)
	}
	timeout, err := envconfig.Duration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("redis config: %w", err)
	}
	return Config{
		Host:        envconfig.String("REDIS_HOST", ""),
		Port:        envconfig.String("REDIS_PORT", "6379"),
		Password:    envconfig.String("REDIS_PASSWORD", ""),
		DB:          db,
		DialTimeout: timeout,
	}, nil
}
