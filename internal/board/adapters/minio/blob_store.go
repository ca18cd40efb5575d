// Package minio реализует Blob Store поверх S3-совместимого хранилища.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

// Сообщения об ошибках.
const (
	ErrCreateClient   = "failed to create storage client"
	ErrCheckBucket    = "failed to check bucket"
	ErrCreateBucket   = "failed to create bucket"
	ErrBucketMissing  = "bucket does not exist"
	ErrPutObject      = "failed to put object"
	ErrStatObject     = "failed to stat object"
	ErrPresignObject  = "failed to presign object url"
	ErrEmptyObjectKey = "empty object key"
)

const defaultContentType = "application/octet-stream"

// Config - параметры подключения к хранилищу.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	UseSSL        bool
	Bucket        string
	PresignExpiry time.Duration
}

// Client - методы minio.Client, которые использует BlobStore.
type Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration,
		reqParams url.Values) (*url.URL, error)
}

// NewClient создает клиент minio по конфигурации.
func NewClient(cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateClient, err)
	}
	return client, nil
}

var (
	_ stores.BlobStore = (*BlobStore)(nil)
	_ stores.Pinger    = (*BlobStore)(nil)
)

// BlobStore хранит изображения по имени файла и выдает на них подписанные ссылки.
type BlobStore struct {
	client Client
	bucket string
	expiry time.Duration
}

// NewBlobStore создает хранилище поверх бакета bucket.
func NewBlobStore(client Client, bucket string, expiry time.Duration) *BlobStore {
	return &BlobStore{client: client, bucket: bucket, expiry: expiry}
}

// EnsureBucket создает бакет, если его еще нет.
func (s *BlobStore) EnsureBucket(ctx context.Context, region string) error {
	log := logger.Log(ctx).With(zap.String("bucket", s.bucket))

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCheckBucket, classify(err))
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateBucket, classify(err))
	}

	log.Info(ctx, "bucket created")
	return nil
}

// Put загружает файл под ключом key, перезаписывая существующий объект.
func (s *BlobStore) Put(ctx context.Context, key string, file entities.ImageFile) error {
	log := logger.Log(ctx).With(zap.String("method", "BlobStore.Put"), zap.String("key", key))

	if key == "" {
		return fmt.Errorf("%s: %w", ErrEmptyObjectKey, entities.ErrValidation)
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	size := file.Size
	if size <= 0 {
		size = -1
	}

	content := file.Content
	if content == nil {
		content = http.NoBody
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Error(ctx, ErrPutObject, zap.Error(err))
		if isCanceled(err) {
			return fmt.Errorf("%s: %w", ErrPutObject, err)
		}
		return fmt.Errorf("%s: %w: %w", ErrPutObject, entities.ErrStorage, err)
	}

	log.Debug(ctx, "object stored", zap.Int64("size", info.Size), zap.String("etag", info.ETag))
	return nil
}

// Get проверяет, что объект существует, и возвращает подписанную ссылку на него.
func (s *BlobStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "BlobStore.Get"), zap.String("key", key))

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		log.Debug(ctx, ErrStatObject, zap.Error(err))
		return "", fmt.Errorf("%s %q: %w", ErrStatObject, key, classify(err))
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		log.Error(ctx, ErrPresignObject, zap.Error(err))
		return "", fmt.Errorf("%s %q: %w", ErrPresignObject, key, classify(err))
	}

	return u.String(), nil
}

// Ping проверяет доступность бакета.
func (s *BlobStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCheckBucket, classify(err))
	}
	if !exists {
		return fmt.Errorf("%s %q: %w", ErrBucketMissing, s.bucket, entities.ErrNotFound)
	}
	return nil
}

func classify(err error) error {
	if isCanceled(err) {
		return err
	}

	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey", resp.Code == "NoSuchBucket", resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", entities.ErrNotFound, err)
	case resp.Code == "AccessDenied", resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", entities.ErrStorage, err)
	default:
		return fmt.Errorf("%w: %w", entities.ErrTransientNetwork, err)
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
