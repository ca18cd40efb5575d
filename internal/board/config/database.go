package config

import (
	"fmt"
	"time"

	"noteboard/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string        `yaml:"host" env:"NOTEBOARD_POSTGRES_HOST" env-default:"localhost"`
	Port          int           `yaml:"port" env:"NOTEBOARD_POSTGRES_PORT" env-default:"5432"`
	User          string        `yaml:"user" env:"NOTEBOARD_POSTGRES_USER" env-default:"postgres"`
	Password      string        `yaml:"password" env:"NOTEBOARD_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string        `yaml:"database" env:"NOTEBOARD_POSTGRES_DB" env-default:"notes"`
	SSLMode       string        `yaml:"sslmode" env:"NOTEBOARD_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn       int           `yaml:"min_conn" env:"NOTEBOARD_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int           `yaml:"max_conn" env:"NOTEBOARD_POSTGRES_MAX_CONN" env-default:"10"`
	PingAttempts  uint          `yaml:"ping_attempts" env:"NOTEBOARD_POSTGRES_PING_ATTEMPTS" env-default:"5"`
	PingBackoff   time.Duration `yaml:"ping_backoff" env:"NOTEBOARD_POSTGRES_PING_BACKOFF" env-default:"1s"`
	MigrationsDir string        `yaml:"migrations_dir" env:"NOTEBOARD_POSTGRES_MIGRATIONS" env-default:"file://migrations/notes"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// GetOptions возвращает параметры пула.
func (p *PostgresConfig) GetOptions() postgres.Options {
	return postgres.Options{
		MinConn:      p.MinConn,
		MaxConn:      p.MaxConn,
		PingAttempts: p.PingAttempts,
		PingBackoff:  p.PingBackoff,
	}
}
