package config

import (
	"time"

	"noteboard/internal/board/resilience"
)

// BreakerConfig содержит настройки Circuit Breaker для внешних хранилищ.
type BreakerConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"NOTEBOARD_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	Timeout          time.Duration `yaml:"timeout" env:"NOTEBOARD_BREAKER_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"NOTEBOARD_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
}

// GetCircuitBreakerConfig возвращает настройки в формате пакета resilience.
func (c *BreakerConfig) GetCircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.ErrorThreshold,
		Timeout:          c.Timeout,
		SuccessThreshold: c.SuccessThreshold,
	}
}
