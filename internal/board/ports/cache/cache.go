// Package cache определяет интерфейс для кэширования.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс для работы с кэшем.
// Get возвращает пустую строку без ошибки, если ключа нет.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
