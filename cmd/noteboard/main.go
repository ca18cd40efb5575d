// Package main реализует точку входа сервиса доски заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noteboard/internal/board/config"
	"noteboard/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEBOARD_LOGGER_MODE"
	EnvLoggerLevel = "NOTEBOARD_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

var rootCmd = &cobra.Command{
	Use:           "noteboard",
	Short:         "Note board web service",
	Long:          `noteboard serves a note board backed by PostgreSQL records and MinIO images.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer syncLogger()

		if err := rootCmd.ExecuteContext(ctx); err != nil {
			logger.Log(ctx).Error(ctx, "command failed", zap.Error(err))
			exitCode = 1
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// setup загружает конфигурацию и заменяет глобальный логгер настроенным.
func setup(ctx context.Context) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	log, err := logger.NewLoggerWithRotation(cfg.Logging.GetEnvironment(), cfg.Logging.Level, cfg.Logging.GetRotation())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(log)

	return cfg, log, nil
}

func syncLogger() {
	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
			panic(writeErr)
		}
	}
}
