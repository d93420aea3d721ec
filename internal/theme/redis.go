package theme

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to StorageKey, e.g. "sleepcalc:".
	Prefix string
	// ConnectAttempts bounds the startup ping; zero means 5.
	ConnectAttempts uint
}

// RedisStore keeps the theme in a single Redis string key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects and pings the server, retrying with backoff while it
// comes up.
func NewRedisStore(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	attempts := opts.ConnectAttempts
	if attempts == 0 {
		attempts = 5
	}
	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("redis ping failed, retrying", zap.Uint("attempt", n+1), zap.String("addr", opts.Addr), zap.Error(err))
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	return &RedisStore{client: client, key: opts.Prefix + StorageKey}, nil
}

func (s *RedisStore) Load(ctx context.Context) (string, bool, error) {
	name, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return name, true, nil
}

func (s *RedisStore) Save(ctx context.Context, name string) error {
	if err := s.client.Set(ctx, s.key, name, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
