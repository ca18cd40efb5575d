package config

import (
	"fmt"
	"time"

	"noteboard/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша ссылок. Пустой Host отключает кэш.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"NOTEBOARD_REDIS_HOST"`
	Port            int           `yaml:"port" env:"NOTEBOARD_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"NOTEBOARD_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"NOTEBOARD_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"NOTEBOARD_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"NOTEBOARD_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"NOTEBOARD_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"NOTEBOARD_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"NOTEBOARD_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"NOTEBOARD_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTEBOARD_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	PingAttempts    uint          `yaml:"ping_attempts" env:"NOTEBOARD_REDIS_PING_ATTEMPTS" env-default:"3"`
	KeyPrefix       string        `yaml:"key_prefix" env:"NOTEBOARD_REDIS_KEY_PREFIX" env-default:"noteboard:url:"`
	URLTTL          time.Duration `yaml:"url_ttl" env:"NOTEBOARD_REDIS_URL_TTL" env-default:"15m"`
}

// Enabled сообщает, настроен ли кэш.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetClientConfig возвращает параметры клиента Redis.
func (c *RedisConfig) GetClientConfig() redis.Config {
	return redis.Config{
		Addr:            c.GetAddress(),
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdle:         c.MinIdle,
		ConnectTimeout:  c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     c.IdleTimeout,
		MaxConnLifetime: c.MaxConnLifetime,
		PingAttempts:    c.PingAttempts,
	}
}
