package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bookpay/internal/config"
	"bookpay/internal/domain"
	"bookpay/pkg/e"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewRedis(cfg *config.RedisConfig, logger *slog.Logger) (*Redis, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
		DB:       cfg.DBRedis,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis.NewRedis: failed to ping: %w", err)
	}

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return e.Wrap("redis.Set: marshal", err)
	}

	if err := r.client.Set(ctx, key, data, exp).Err(); err != nil {
		return e.Wrap("redis.Set", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string, value *domain.Order) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", e.ErrNotFound
		}
		return "", e.Wrap("redis.Get", err)
	}

	if err := json.Unmarshal([]byte(data), value); err != nil {
		return "", e.Wrap("redis.Get: unmarshal", err)
	}

	return data, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return e.Wrap("redis.Delete", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
