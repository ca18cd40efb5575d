package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteboard/internal/board/adapters/cache"
	"noteboard/internal/board/domain/entities"
)

const testPrefix = "noteboard:url:"

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	c := cache.NewRedisCache(client, testPrefix, time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	return s, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set, get and delete", func(t *testing.T) {
		s, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "cat.png", "https://blobs/cat.png", time.Minute))

		raw, err := s.Get(testPrefix + "cat.png")
		require.NoError(t, err)
		assert.Equal(t, "https://blobs/cat.png", raw)
		assert.Equal(t, time.Minute, s.TTL(testPrefix+"cat.png"))

		value, err := c.Get(ctx, "cat.png")
		require.NoError(t, err)
		assert.Equal(t, "https://blobs/cat.png", value)

		require.NoError(t, c.Delete(ctx, "cat.png"))
		assert.False(t, s.Exists(testPrefix+"cat.png"))
	})

	t.Run("miss is empty without error", func(t *testing.T) {
		_, c := newTestCache(t)

		value, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		s, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		assert.Equal(t, time.Hour, s.TTL(testPrefix+"k"))
	})

	t.Run("expired value is a miss", func(t *testing.T) {
		s, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "k", "v", time.Second))
		s.FastForward(2 * time.Second)

		value, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("server down", func(t *testing.T) {
		s, c := newTestCache(t)
		s.Close()

		_, err := c.Get(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), cache.ErrorFailedToGet)

		err = c.Set(ctx, "k", "v", time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), cache.ErrorFailedToSet)
	})
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, key string, file entities.ImageFile) error {
	return m.Called(ctx, key, file).Error(0)
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func TestCachedBlobStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("second get served from cache", func(t *testing.T) {
		s, c := newTestCache(t)
		next := new(mockBlobStore)
		next.On("Get", mock.Anything, "cat.png").Return("https://blobs/cat.png?sig", nil).Once()

		store := cache.NewCachedBlobStore(next, c, 10*time.Minute)

		first, err := store.Get(ctx, "cat.png")
		require.NoError(t, err)
		second, err := store.Get(ctx, "cat.png")
		require.NoError(t, err)

		assert.Equal(t, "https://blobs/cat.png?sig", first)
		assert.Equal(t, first, second)
		assert.Equal(t, 10*time.Minute, s.TTL(testPrefix+"cat.png"))
		next.AssertNumberOfCalls(t, "Get", 1)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		s, c := newTestCache(t)
		next := new(mockBlobStore)
		next.On("Get", mock.Anything, "cat.png").Return("", entities.ErrNotFound).Once()

		store := cache.NewCachedBlobStore(next, c, time.Minute)

		_, err := store.Get(ctx, "cat.png")
		assert.ErrorIs(t, err, entities.ErrNotFound)
		assert.False(t, s.Exists(testPrefix+"cat.png"))
	})

	t.Run("cache down falls through", func(t *testing.T) {
		s, c := newTestCache(t)
		s.Close()

		next := new(mockBlobStore)
		next.On("Get", mock.Anything, "cat.png").Return("https://blobs/cat.png", nil).Once()

		url, err := cache.NewCachedBlobStore(next, c, time.Minute).Get(ctx, "cat.png")

		require.NoError(t, err)
		assert.Equal(t, "https://blobs/cat.png", url)
	})
}

func TestCachedBlobStore_Put(t *testing.T) {
	ctx := context.Background()
	file := entities.ImageFile{Name: "cat.png"}

	t.Run("put invalidates cached url", func(t *testing.T) {
		s, c := newTestCache(t)
		require.NoError(t, s.Set(testPrefix+"cat.png", "stale"))

		next := new(mockBlobStore)
		next.On("Put", mock.Anything, "cat.png", file).Return(nil).Once()

		require.NoError(t, cache.NewCachedBlobStore(next, c, time.Minute).Put(ctx, "cat.png", file))
		assert.False(t, s.Exists(testPrefix+"cat.png"))
	})

	t.Run("failed put keeps cache", func(t *testing.T) {
		s, c := newTestCache(t)
		require.NoError(t, s.Set(testPrefix+"cat.png", "old"))

		next := new(mockBlobStore)
		next.On("Put", mock.Anything, "cat.png", file).Return(entities.ErrStorage).Once()

		err := cache.NewCachedBlobStore(next, c, time.Minute).Put(ctx, "cat.png", file)
		assert.ErrorIs(t, err, entities.ErrStorage)
		assert.True(t, s.Exists(testPrefix+"cat.png"))
	})
}
