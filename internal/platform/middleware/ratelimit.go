package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 100, BurstSize: 200}
}

// tokenBucket is a classic refill-on-read token bucket. One bucket per
// client IP; a burst drains it, steady traffic keeps it topped up.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	max        float64
	ratePerSec float64
	lastRefill time.Time
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.ratePerSec
	if b.tokens > b.max {
		b.tokens = b.max
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// retryAfter estimates seconds until the next token, for the Retry-After
// header. Never returns less than 1.
func (b *tokenBucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ratePerSec <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.ratePerSec) + 1
}

// RateLimit returns middleware enforcing a per-client-IP token bucket.
// Buckets are created lazily and live for the process lifetime; a small
// clinic's client population is bounded, so no eviction is needed.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	var mu sync.RWMutex
	buckets := make(map[string]*tokenBucket)

	bucketFor := func(key string) *tokenBucket {
		mu.RLock()
		b, ok := buckets[key]
		mu.RUnlock()
		if ok {
			return b
		}
		mu.Lock()
		defer mu.Unlock()
		if b, ok := buckets[key]; ok {
			return b
		}
		b = &tokenBucket{
			tokens:     float64(cfg.BurstSize),
			max:        float64(cfg.BurstSize),
			ratePerSec: cfg.RequestsPerSecond,
			lastRefill: time.Now(),
		}
		buckets[key] = b
		return b
	}

	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)

			b := bucketFor(c.RealIP())
			if !b.allow() {
				h.Set("Retry-After", strconv.Itoa(b.retryAfter()))
				h.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
