package config

import (
	"fmt"
	"time"
)

// HealthConfig содержит настройки gRPC сервиса проверки состояния.
type HealthConfig struct {
	Host          string        `yaml:"host" env:"NOTEBOARD_HEALTH_HOST" env-default:"0.0.0.0"`
	Port          int           `yaml:"port" env:"NOTEBOARD_HEALTH_PORT" env-default:"8081"`
	ProbeInterval time.Duration `yaml:"probe_interval" env:"NOTEBOARD_HEALTH_PROBE_INTERVAL" env-default:"15s"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout" env:"NOTEBOARD_HEALTH_PROBE_TIMEOUT" env-default:"3s"`
}

// GetAddress возвращает адрес gRPC сервера.
func (c *HealthConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
