package config

import "noteboard/pkg/logger"

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"NOTEBOARD_LOGGER_LEVEL" env-default:"info"`
	Mode       string `yaml:"mode" env:"NOTEBOARD_LOGGER_MODE" env-default:"production"`
	File       string `yaml:"file" env:"NOTEBOARD_LOGGER_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"NOTEBOARD_LOGGER_MAX_SIZE_MB" env-default:"100"`
	MaxAgeDays int    `yaml:"max_age_days" env:"NOTEBOARD_LOGGER_MAX_AGE_DAYS" env-default:"7"`
	MaxBackups int    `yaml:"max_backups" env:"NOTEBOARD_LOGGER_MAX_BACKUPS" env-default:"3"`
	Compress   bool   `yaml:"compress" env:"NOTEBOARD_LOGGER_COMPRESS" env-default:"true"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}

// GetRotation возвращает настройки записи в файл или nil, если файл не задан.
func (c *LoggingConfig) GetRotation() *logger.Rotation {
	if c.File == "" {
		return nil
	}
	return &logger.Rotation{
		Filename:   c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxAgeDays: c.MaxAgeDays,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}
