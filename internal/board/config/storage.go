package config

import (
	"time"

	"noteboard/internal/board/adapters/minio"
)

// StorageConfig содержит настройки S3-совместимого хранилища изображений.
type StorageConfig struct {
	Endpoint      string        `yaml:"endpoint" env:"NOTEBOARD_STORAGE_ENDPOINT" env-default:"localhost:9000"`
	AccessKey     string        `yaml:"access_key" env:"NOTEBOARD_STORAGE_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey     string        `yaml:"secret_key" env:"NOTEBOARD_STORAGE_SECRET_KEY" env-default:"minioadmin"`
	Region        string        `yaml:"region" env:"NOTEBOARD_STORAGE_REGION"`
	UseSSL        bool          `yaml:"use_ssl" env:"NOTEBOARD_STORAGE_USE_SSL" env-default:"false"`
	Bucket        string        `yaml:"bucket" env:"NOTEBOARD_STORAGE_BUCKET" env-default:"notes"`
	PresignExpiry time.Duration `yaml:"presign_expiry" env:"NOTEBOARD_STORAGE_PRESIGN_EXPIRY" env-default:"1h"`
}

// GetClientConfig возвращает параметры клиента хранилища.
func (c *StorageConfig) GetClientConfig() minio.Config {
	return minio.Config{
		Endpoint:      c.Endpoint,
		AccessKey:     c.AccessKey,
		SecretKey:     c.SecretKey,
		Region:        c.Region,
		UseSSL:        c.UseSSL,
		Bucket:        c.Bucket,
		PresignExpiry: c.PresignExpiry,
	}
}
