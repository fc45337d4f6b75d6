package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimitMiddleware enforces a per-IP sliding-window limit backed by a
// redis sorted set. Without a redis client, or when redis fails, requests
// pass through: the limiter protects capacity, it is not a security gate.
type RateLimitMiddleware struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	limit := 3000
	window := time.Hour
	if rl := cfg.RateLimit; rl != nil {
		if rl.Max > 0 {
			limit = rl.Max
		}
		if rl.Window > 0 {
			window = rl.Window
		}
	}

	return &RateLimitMiddleware{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Enabled reports whether the limiter can actually enforce anything.
func (m *RateLimitMiddleware) Enabled(cfg *config.Config) bool {
	if m.client == nil {
		return false
	}
	if rl := cfg.RateLimit; rl != nil {
		return rl.Enabled
	}

	return false
}

// Limit is the echo middleware entry point.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.client == nil {
			return next(c)
		}

		allowed, remaining, resetAt := m.allow(c.Request().Context(), rateLimitKeyPrefix+c.RealIP())

		h := c.Response().Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(m.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			h.Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())))

			return domainerrors.ErrTooManyRequests.WrapMessage("rate limit exceeded")
		}

		return next(c)
	}
}

// allow counts the caller's requests inside the sliding window. The four
// redis commands run in one pipeline round trip.
func (m *RateLimitMiddleware) allow(ctx context.Context, key string) (bool, int, time.Time) {
	now := time.Now()
	windowStart := now.Add(-m.window)

	pipe := m.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	zcard := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, m.window)

	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Warn("Rate limiter degrading open", slog.Any("error", err))

		return true, m.limit, now.Add(m.window)
	}

	count := int(zcard.Val())
	if count >= m.limit {
		resetAt := now.Add(m.window)
		if oldest, err := m.client.ZRange(ctx, key, 0, 0).Result(); err == nil && len(oldest) > 0 {
			if ts, err := strconv.ParseInt(oldest[0], 10, 64); err == nil {
				resetAt = time.Unix(0, ts).Add(m.window)
			}
		}

		return false, 0, resetAt
	}

	remaining := m.limit - count - 1
	if remaining < 0 {
		remaining = 0
	}

	return true, remaining, now.Add(m.window)
}
