package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect creates a Redis client and verifies it with a ping. Failed pings are
// retried with exponential backoff until RetryAttempts is exhausted or
// ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.ConnectionURL, "redis://") && !strings.HasPrefix(cfg.ConnectionURL, "rediss://") {
		return nil, ErrFailedToParseRedisConnString
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval

	client := redis.NewClient(opts)
	for attempt := 1; ; attempt++ {
		err = client.Ping(ctx).Err()
		if err == nil {
			return client, nil
		}
		if attempt >= attempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(interval):
		}
		interval *= 2
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, err)
}

// Healthcheck returns a function that pings the client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
