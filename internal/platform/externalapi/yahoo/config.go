// Package yahoo は Yahoo Finance chart API から日足を取得するクライアントです。
package yahoo

import (
	"fmt"
	"time"

	"stockboard_backend/internal/shared/envconfig"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (compatible; stockboard/1.0)"
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL      string        // e.g. "https://query1.finance.yahoo.com"
	UserAgent    string        // Yahoo はUA無しのリクエストを拒否することがある
	Timeout      time.Duration // HTTP request timeout
	RateLimit    int           // RateInterval あたりの最大リクエスト数（0以下で無制限）
	RateInterval time.Duration
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() (Config, error) {
	timeout, err := envconfig.Duration("YAHOO_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("yahoo config: %w", err)
	}
	limit, err := envconfig.Int("YAHOO_RATE_LIMIT", 60)
	if err != nil {
		return Config{}, fmt.Errorf("yahoo config: %w", err)
	}
	return Config{
		BaseURL:      envconfig.String("YAHOO_BASE_URL", defaultBaseURL),
		UserAgent:    envconfig.String("YAHOO_USER_AGENT", defaultUserAgent),
		Timeout:      timeout,
		RateLimit:    limit,
		RateInterval: time.Minute,
	}, nil
}
