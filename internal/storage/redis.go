package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/config"
)

// RedisMedium backs the offline layer with a Redis instance. Entries
// are written without Redis-level TTLs: expiry is carried inside the
// stored envelope so a stale entry stays physically present until the
// cache store discovers and deletes it.
type RedisMedium struct {
	client *redis.Client
}

// NewRedisMedium connects to Redis using the provided configuration.
func NewRedisMedium(cfg config.RedisConfig, logger *zap.Logger) *RedisMedium {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &RedisMedium{client: client}
}

// NewRedisMediumFromClient wraps an existing client, mainly for tests.
func NewRedisMediumFromClient(client *redis.Client) *RedisMedium {
	return &RedisMedium{client: client}
}

// Get returns the stored value, or ErrNotFound.
func (m *RedisMedium) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := m.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores the value with no Redis expiration.
func (m *RedisMedium) Set(ctx context.Context, key string, value []byte) error {
	return m.client.Set(ctx, key, value, 0).Err()
}

// Delete removes the key.
func (m *RedisMedium) Delete(ctx context.Context, key string) error {
	return m.client.Del(ctx, key).Err()
}

// Keys lists stored keys beginning with prefix.
func (m *RedisMedium) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := m.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Close closes the client.
func (m *RedisMedium) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// Ping verifies Redis connectivity.
func (m *RedisMedium) Ping(ctx context.Context) error {
	if m == nil || m.client == nil {
		return errors.New("redis client not configured")
	}
	return m.client.Ping(ctx).Err()
}
