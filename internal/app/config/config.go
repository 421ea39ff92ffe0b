// Package config はHTTPサーバー全体の設定を読み込みます。
// DB・Redis・外部APIなどの設定はそれぞれのパッケージの LoadConfig が担当します。
package config

import (
	"fmt"
	"net"
	"time"

	jwtmw "stockboard_backend/internal/platform/jwt"
	"stockboard_backend/internal/shared/envconfig"
)

// Config はサーバーレベルの設定です。
type Config struct {
	Host              string
	Port              string
	CORSAllowOrigins  []string
	JWTSecret         string
	DefaultUser       string
	CacheTTL          time.Duration
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

// Addr は listen アドレス（host:port）を返します。
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load は環境変数から Config を読み込みます。
func Load() (Config, error) {
	ttlSeconds, err := envconfig.Int("CACHE_TTL_SECONDS", 300)
	if err != nil {
		return Config{}, fmt.Errorf("app config: %w", err)
	}
	shutdown, err := envconfig.Duration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("app config: %w", err)
	}
	readHeader, err := envconfig.Duration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("app config: %w", err)
	}

	cfg := Config{
		Host:              envconfig.String("HTTP_HOST", ""),
		Port:              envconfig.String("HTTP_PORT", "8080"),
		CORSAllowOrigins:  envconfig.List("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		JWTSecret:         envconfig.String(jwtmw.EnvKeyJWTSecret, ""),
		DefaultUser:       envconfig.String("WATCHLIST_DEFAULT_USER", "guest"),
		CacheTTL:          time.Duration(ttlSeconds) * time.Second,
		ShutdownTimeout:   shutdown,
		ReadHeaderTimeout: readHeader,
	}
	return cfg, nil
}
