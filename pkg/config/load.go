// Package config загружает конфигурацию из .env, переменных окружения и необязательного yaml-файла.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"noteboard/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgDotenvNotLoaded         = "dotenv file not loaded"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Переменные из dotenvPath (если файл есть)
// попадают в окружение; при непустом path значения читаются из файла
// и перекрываются окружением, иначе только из окружения.
func Load[T any](ctx context.Context, serviceName, path, dotenvPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn(ctx, msgDotenvNotLoaded, zap.String(attrPath, dotenvPath), zap.Error(err))
		}
	}

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}
