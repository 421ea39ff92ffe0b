package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、interval あたり limit 回までに呼び出し頻度を制限します。
// トークンバケット（golang.org/x/time/rate）で実装し、最大 limit 回のバーストを許可します。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は無制限になります。
func NewRateLimiter(name string, limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{name: name, limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// Waitはトークンが得られるまで待機します。ctx がキャンセルされた場合はそのエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Allow() {
		return nil
	}
	slog.Info("rate limit hit, waiting", "limiter", rl.name)
	return rl.limiter.Wait(ctx)
}
