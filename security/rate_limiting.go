package security

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

const DefaultRequestsPerMinute = 30

type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}
	return &RateLimiter{redis: redisClient, limit: int64(perMinute), window: time.Minute}
}

// Allow counts one request for key in the current window. Redis failures let
// the request through.
func (r *RateLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := r.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("Rate limiter unavailable", "key", redisKey, "error", err)
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, redisKey, r.window)
	}
	return count <= r.limit
}

// Middleware throttles by client IP and rejects obvious crawlers.
func (r *RateLimiter) Middleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if isSuspiciousUserAgent(e.Request.UserAgent()) {
			return apis.NewForbiddenError("Access denied", nil)
		}
		if !r.Allow(e.Request.Context(), e.RealIP()) {
			return e.JSON(429, map[string]string{
				"error": "Too many requests",
			})
		}
		return e.Next()
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
