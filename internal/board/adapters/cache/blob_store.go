package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/ports/cache"
	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

var _ stores.BlobStore = (*CachedBlobStore)(nil)

// CachedBlobStore запоминает разрешенные ссылки на изображения.
// Ошибки кэша не влияют на результат: при сбое используется исходное хранилище.
type CachedBlobStore struct {
	next  stores.BlobStore
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedBlobStore оборачивает next. ttl должен быть меньше срока жизни подписанной ссылки.
func NewCachedBlobStore(next stores.BlobStore, c cache.Cache, ttl time.Duration) *CachedBlobStore {
	return &CachedBlobStore{next: next, cache: c, ttl: ttl}
}

// Put загружает файл и сбрасывает ссылку из кэша.
func (s *CachedBlobStore) Put(ctx context.Context, key string, file entities.ImageFile) error {
	if err := s.next.Put(ctx, key, file); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Log(ctx).Debug(ctx, "url cache invalidation skipped", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Get возвращает ссылку из кэша или разрешает ее в хранилище.
func (s *CachedBlobStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx)

	if url, err := s.cache.Get(ctx, key); err == nil && url != "" {
		return url, nil
	}

	url, err := s.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, url, s.ttl); err != nil {
		log.Debug(ctx, "url cache store skipped", zap.String("key", key), zap.Error(err))
	}
	return url, nil
}
