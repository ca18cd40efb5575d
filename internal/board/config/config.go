// Package config содержит конфигурацию сервиса доски заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "noteboard/pkg/config"
	"noteboard/pkg/logger"
)

// Константы сообщений для конфигурации.
const (
	ServiceName = "noteboard"

	EnvConfigPath = "NOTEBOARD_CONFIG_PATH"
	EnvDotenvPath = "NOTEBOARD_DOTENV_PATH"

	defaultDotenvPath = ".env"

	LogConfigSummary = "noteboard configuration"
)

// ErrURLTTLTooLong - кэшированная ссылка пережила бы срок действия подписи.
var ErrURLTTLTooLong = errors.New("redis url ttl must be shorter than storage presign expiry")

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Postgres PostgresConfig `yaml:"postgres"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Health   HealthConfig   `yaml:"health"`
	Breaker  BreakerConfig  `yaml:"breaker"`
}

// Load загружает конфигурацию: .env, затем yaml из NOTEBOARD_CONFIG_PATH (если задан),
// затем переменные окружения.
func Load(ctx context.Context) (*Config, error) {
	dotenv := os.Getenv(EnvDotenvPath)
	if dotenv == "" {
		dotenv = defaultDotenvPath
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath), dotenv)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("health_address", cfg.Health.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.String("storage_endpoint", cfg.Storage.Endpoint),
		zap.String("storage_bucket", cfg.Storage.Bucket),
		zap.Bool("redis_enabled", cfg.Redis.Enabled()),
		zap.Bool("auth_enabled", cfg.Auth.Enabled()),
		zap.Duration("session_idle_ttl", cfg.Session.IdleTTL),
		zap.Int("session_max", cfg.Session.MaxSessions))

	return cfg, nil
}

// Validate проверяет согласованность разделов.
func (c *Config) Validate() error {
	if c.Redis.Enabled() && c.Redis.URLTTL >= c.Storage.PresignExpiry {
		return fmt.Errorf("%w: url_ttl=%s presign_expiry=%s",
			ErrURLTTLTooLong, c.Redis.URLTTL, c.Storage.PresignExpiry)
	}
	return nil
}
