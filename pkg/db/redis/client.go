// Package redis предоставляет подключение к Redis с проверкой соединения при старте.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noteboard/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
	LogPingRetry  = "failed to ping Redis, retrying"

	ErrConnect = "failed to connect to redis"
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Addr            string
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
	PingAttempts    uint
}

// NewClient создает клиент Redis и проверяет соединение.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("redis_address", cfg.Addr))
	log.Info(ctx, LogConnecting)

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	attempts := cfg.PingAttempts
	if attempts == 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error { return client.Ping(ctx).Err() },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn(ctx, LogPingRetry, zap.Uint("attempt", attempt+1), zap.Error(err))
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return client, nil
}
