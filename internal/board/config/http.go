package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTEBOARD_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTEBOARD_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTEBOARD_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTEBOARD_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	BodyLimitMB  int           `yaml:"body_limit_mb" env:"NOTEBOARD_HTTP_BODY_LIMIT_MB" env-default:"10"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetBodyLimit возвращает максимальный размер тела запроса в байтах.
func (c *HTTPConfig) GetBodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
