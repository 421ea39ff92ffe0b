// Package alphavantage は Alpha Vantage の TIME_SERIES_DAILY から日足を取得するクライアントです。
package alphavantage

import (
	"fmt"
	"time"

	"stockboard_backend/internal/shared/envconfig"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage client.
type Config struct {
	APIKey       string        // リクエストに apiKey が無い場合に使う
	BaseURL      string        // e.g. "https://www.alphavantage.co"
	Timeout      time.Duration // HTTP request timeout
	RateLimit    int           // 無料枠は1分あたり5リクエスト
	RateInterval time.Duration
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() (Config, error) {
	timeout, err := envconfig.Duration("ALPHAVANTAGE_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("alphavantage config: %w", err)
	}
	limit, err := envconfig.Int("ALPHAVANTAGE_RATE_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("alphavantage config: %w", err)
	}
	return Config{
		APIKey:       envconfig.String("ALPHAVANTAGE_API_KEY", ""),
		BaseURL:      envconfig.String("ALPHAVANTAGE_BASE_URL", defaultBaseURL),
		Timeout:      timeout,
		RateLimit:    limit,
		RateInterval: time.Minute,
	}, nil
}
