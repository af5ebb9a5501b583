package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	Connection *redis.Client
}

// NewRedisStorage connects to addr and fails unless the server answers a ping.
func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	storage := &RedisStorage{
		Connection: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}

	if err := storage.Ping(ctx); err != nil {
		_ = storage.Connection.Close()
		return nil, err
	}

	return storage, nil
}

// Ping checks that the server still answers. It doubles as the health check
// of the HTTP server.
func (that *RedisStorage) Ping(ctx context.Context) error {
	if err := that.Connection.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

func (that *RedisStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	return nil
}
