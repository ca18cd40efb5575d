package minio_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blobminio "noteboard/internal/board/adapters/minio"
	"noteboard/internal/board/domain/entities"
)

const testBucket = "notes"

var errConnectionReset = errors.New("connection reset by peer")

type mockClient struct {
	mock.Mock
}

func (m *mockClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *mockClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *mockClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
	opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockClient) StatObject(ctx context.Context, bucketName, objectName string,
	opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockClient) PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration,
	reqParams url.Values) (*url.URL, error) {
	args := m.Called(ctx, bucketName, objectName, expires, reqParams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func TestBlobStore_Put(t *testing.T) {
	ctx := context.Background()
	content := strings.NewReader("png-bytes")

	t.Run("stored under the filename", func(t *testing.T) {
		client := new(mockClient)
		client.On("PutObject", mock.Anything, testBucket, "cat.png", content, int64(9),
			minio.PutObjectOptions{ContentType: "image/png"}).
			Return(minio.UploadInfo{Key: "cat.png", Size: 9}, nil).Once()

		store := blobminio.NewBlobStore(client, testBucket, time.Hour)
		err := store.Put(ctx, "cat.png", entities.ImageFile{Name: "cat.png", ContentType: "image/png", Size: 9, Content: content})

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("unknown size and type", func(t *testing.T) {
		client := new(mockClient)
		client.On("PutObject", mock.Anything, testBucket, "blob", content, int64(-1),
			minio.PutObjectOptions{ContentType: "application/octet-stream"}).
			Return(minio.UploadInfo{}, nil).Once()

		store := blobminio.NewBlobStore(client, testBucket, time.Hour)
		require.NoError(t, store.Put(ctx, "blob", entities.ImageFile{Content: content}))
		client.AssertExpectations(t)
	})

	t.Run("transfer failure is storage error", func(t *testing.T) {
		client := new(mockClient)
		client.On("PutObject", mock.Anything, testBucket, "cat.png", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errConnectionReset).Once()

		store := blobminio.NewBlobStore(client, testBucket, time.Hour)
		err := store.Put(ctx, "cat.png", entities.ImageFile{Content: content})

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrStorage)
		assert.ErrorIs(t, err, errConnectionReset)
		assert.Contains(t, err.Error(), blobminio.ErrPutObject)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		client := new(mockClient)
		store := blobminio.NewBlobStore(client, testBucket, time.Hour)

		err := store.Put(ctx, "", entities.ImageFile{})

		assert.ErrorIs(t, err, entities.ErrValidation)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBlobStore_Get(t *testing.T) {
	ctx := context.Background()
	signed, err := url.Parse("http://localhost:9000/notes/cat.png?X-Amz-Signature=abc")
	require.NoError(t, err)

	tests := []struct {
		name     string
		setup    func(client *mockClient)
		wantURL  string
		wantKind entities.Kind
	}{
		{
			name: "presigned url",
			setup: func(client *mockClient) {
				client.On("StatObject", mock.Anything, testBucket, "cat.png", minio.StatObjectOptions{}).
					Return(minio.ObjectInfo{Key: "cat.png"}, nil).Once()
				client.On("PresignedGetObject", mock.Anything, testBucket, "cat.png", 15*time.Minute, url.Values(nil)).
					Return(signed, nil).Once()
			},
			wantURL:  signed.String(),
			wantKind: entities.KindNone,
		},
		{
			name: "missing object",
			setup: func(client *mockClient) {
				client.On("StatObject", mock.Anything, testBucket, "cat.png", mock.Anything).
					Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}).Once()
			},
			wantKind: entities.KindNotFound,
		},
		{
			name: "network failure",
			setup: func(client *mockClient) {
				client.On("StatObject", mock.Anything, testBucket, "cat.png", mock.Anything).
					Return(minio.ObjectInfo{}, errConnectionReset).Once()
			},
			wantKind: entities.KindTransient,
		},
		{
			name: "presign failure",
			setup: func(client *mockClient) {
				client.On("StatObject", mock.Anything, testBucket, "cat.png", mock.Anything).
					Return(minio.ObjectInfo{Key: "cat.png"}, nil).Once()
				client.On("PresignedGetObject", mock.Anything, testBucket, "cat.png", mock.Anything, mock.Anything).
					Return(nil, errConnectionReset).Once()
			},
			wantKind: entities.KindTransient,
		},
		{
			name: "access denied",
			setup: func(client *mockClient) {
				client.On("StatObject", mock.Anything, testBucket, "cat.png", mock.Anything).
					Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}).Once()
			},
			wantKind: entities.KindStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockClient)
			tt.setup(client)

			store := blobminio.NewBlobStore(client, testBucket, 15*time.Minute)
			got, err := store.Get(ctx, "cat.png")

			assert.Equal(t, tt.wantURL, got)
			assert.Equal(t, tt.wantKind, entities.KindOf(err))
			client.AssertExpectations(t)
		})
	}
}

func TestBlobStore_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		client := new(mockClient)
		client.On("BucketExists", mock.Anything, testBucket).Return(true, nil).Once()

		require.NoError(t, blobminio.NewBlobStore(client, testBucket, time.Hour).EnsureBucket(ctx, ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bucket created", func(t *testing.T) {
		client := new(mockClient)
		client.On("BucketExists", mock.Anything, testBucket).Return(false, nil).Once()
		client.On("MakeBucket", mock.Anything, testBucket, minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()

		require.NoError(t, blobminio.NewBlobStore(client, testBucket, time.Hour).EnsureBucket(ctx, "us-east-1"))
		client.AssertExpectations(t)
	})

	t.Run("create failed", func(t *testing.T) {
		client := new(mockClient)
		client.On("BucketExists", mock.Anything, testBucket).Return(false, nil).Once()
		client.On("MakeBucket", mock.Anything, testBucket, mock.Anything).Return(errConnectionReset).Once()

		err := blobminio.NewBlobStore(client, testBucket, time.Hour).EnsureBucket(ctx, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), blobminio.ErrCreateBucket)
	})
}

func TestBlobStore_Ping(t *testing.T) {
	ctx := context.Background()

	client := new(mockClient)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil).Once()
	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil).Once()
	client.On("BucketExists", mock.Anything, testBucket).Return(false, errConnectionReset).Once()

	store := blobminio.NewBlobStore(client, testBucket, time.Hour)

	assert.NoError(t, store.Ping(ctx))
	assert.ErrorIs(t, store.Ping(ctx), entities.ErrNotFound)
	assert.ErrorIs(t, store.Ping(ctx), entities.ErrTransientNetwork)
}

func TestNewClient(t *testing.T) {
	client, err := blobminio.NewClient(blobminio.Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = blobminio.NewClient(blobminio.Config{Endpoint: "http://bad endpoint"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), blobminio.ErrCreateClient)
}
