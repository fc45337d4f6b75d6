package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(t *testing.T, limit int) *RateLimitMiddleware {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		RateLimit: &config.RateLimitConfig{
			Enabled: true,
			Max:     limit,
			Window:  time.Hour,
		},
	}

	return NewRateLimitMiddleware(client, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doLimitedRequest(limiter *RateLimitMiddleware, ip string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := limiter.Limit(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	return rec, err
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	limiter := newTestRateLimiter(t, 3)

	for i := 0; i < 3; i++ {
		rec, err := doLimitedRequest(limiter, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	limiter := newTestRateLimiter(t, 2)

	for i := 0; i < 2; i++ {
		_, err := doLimitedRequest(limiter, "10.0.0.2")
		require.NoError(t, err)
	}

	rec, err := doLimitedRequest(limiter, "10.0.0.2")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTooManyRequests)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_TracksCallersSeparately(t *testing.T) {
	limiter := newTestRateLimiter(t, 1)

	_, err := doLimitedRequest(limiter, "10.0.0.3")
	require.NoError(t, err)

	_, err = doLimitedRequest(limiter, "10.0.0.4")
	require.NoError(t, err)

	_, err = doLimitedRequest(limiter, "10.0.0.3")
	require.Error(t, err)
}

func TestRateLimitMiddleware_DegradesOpenWithoutRedis(t *testing.T) {
	cfg := &config.Config{RateLimit: &config.RateLimitConfig{Enabled: true, Max: 1, Window: time.Hour}}
	limiter := NewRateLimitMiddleware(nil, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, limiter.Enabled(cfg))

	for i := 0; i < 5; i++ {
		_, err := doLimitedRequest(limiter, "10.0.0.5")
		require.NoError(t, err)
	}
}

func TestRateLimitMiddleware_DegradesOpenOnRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{RateLimit: &config.RateLimitConfig{Enabled: true, Max: 1, Window: time.Hour}}
	limiter := NewRateLimitMiddleware(client, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mr.Close()

	for i := 0; i < 3; i++ {
		_, err := doLimitedRequest(limiter, "10.0.0.6")
		require.NoError(t, err)
	}
}
