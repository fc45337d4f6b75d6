// Package redis provides the shared redis client used by the rate limiter.
package redis

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	"passport/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds the dependencies for the redis provider, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the redis client. Redis is optional: without configuration the
// provider yields no client and the rate limiter disables itself.
func New(params Params) (*redis.Client, error) {
	cfg := params.Config.Redis
	if cfg == nil {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// An unreachable redis is not fatal; the limiter degrades open.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		params.Logger.Warn("Redis unreachable at startup, rate limiting will degrade open", slog.Any("error", err))
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
