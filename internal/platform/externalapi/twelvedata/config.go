// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"fmt"
	"time"

	"stockboard_backend/internal/shared/envconfig"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey       string        // API key for authentication
	BaseURL      string        // Base URL for the API (e.g., "https://api.twelvedata.com")
	Timeout      time.Duration // HTTP request timeout
	RateLimit    int           // requests per RateInterval
	RateInterval time.Duration
}

// LoadConfig loads Twelve Data configuration from environment variables.
func LoadConfig() (Config, error) {
	timeout, err := envconfig.Duration("TWELVE_DATA_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("twelvedata config: %w", err)
	}
	limit, err := envconfig.Int("TWELVE_DATA_RATE_LIMIT", 8)
	if err != nil {
		return Config{}, fmt.Errorf("twelvedata config: %w", err)
	}
	return Config{
		APIKey:       envconfig.String("TWELVE_DATA_API_KEY", ""),
		BaseURL:      envconfig.String("TWELVE_DATA_BASE_URL", defaultBaseURL),
		Timeout:      timeout,
		RateLimit:    limit,
		RateInterval: time.Minute,
	}, nil
}
