package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/resilience"
)

var errUnavailable = errors.New("connection refused")

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) List(ctx context.Context) ([]entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Note), args.Error(1)
}

func (m *mockRecordStore) Create(ctx context.Context, input entities.NoteInput) (entities.Note, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(entities.Note), args.Error(1)
}

func (m *mockRecordStore) Delete(ctx context.Context, id string) (entities.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Note), args.Error(1)
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

func tripOnFirst() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{ErrorThreshold: 1, Timeout: time.Hour, SuccessThreshold: 1}
}

func TestGuardedRecordStore(t *testing.T) {
	ctx := context.Background()

	t.Run("passes results through", func(t *testing.T) {
		next := new(mockRecordStore)
		next.On("List", mock.Anything).Return([]entities.Note{{ID: "1"}}, nil).Once()
		next.On("Create", mock.Anything, entities.NoteInput{Name: "n", Description: "d"}).Return(entities.Note{ID: "2"}, nil).Once()
		next.On("Delete", mock.Anything, "2").Return(entities.Note{ID: "2"}, nil).Once()

		store := resilience.NewGuardedRecordStore(next, resilience.NewServiceResilience("records", tripOnFirst()))

		notes, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 1)

		created, err := store.Create(ctx, entities.NoteInput{Name: "n", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, "2", created.ID)

		deleted, err := store.Delete(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "2", deleted.ID)

		next.AssertExpectations(t)
	})

	t.Run("fails fast once open, without retrying", func(t *testing.T) {
		next := new(mockRecordStore)
		next.On("List", mock.Anything).Return(nil, errUnavailable).Once()

		r := resilience.NewServiceResilience("records", tripOnFirst())
		store := resilience.NewGuardedRecordStore(next, r)

		_, err := store.List(ctx)
		assert.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, resilience.StateOpen, r.State())

		_, err = store.Delete(ctx, "1")
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.ErrorIs(t, err, entities.ErrTransientNetwork)

		next.AssertNumberOfCalls(t, "List", 1)
		next.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestGuardedBlobStore(t *testing.T) {
	ctx := context.Background()
	file := entities.ImageFile{Name: "cat.png"}

	next := new(mockBlobStore)
	next.On("Put", mock.Anything, "cat.png", file).Return(nil).Once()
	next.On("Get", mock.Anything, "cat.png").Return("https://blobs/cat.png", nil).Once()
	next.On("Get", mock.Anything, "dog.png").Return("", errUnavailable).Once()

	store := resilience.NewGuardedBlobStore(next, resilience.NewServiceResilience("blobs", tripOnFirst()))

	require.NoError(t, store.Put(ctx, "cat.png", file))

	url, err := store.Get(ctx, "cat.png")
	require.NoError(t, err)
	assert.Equal(t, "https://blobs/cat.png", url)

	_, err = store.Get(ctx, "dog.png")
	assert.ErrorIs(t, err, errUnavailable)

	assert.ErrorIs(t, store.Put(ctx, "cat.png", file), resilience.ErrCircuitOpen)
	next.AssertExpectations(t)
}
