// Package logger оборачивает zap и добавляет к записям идентификатор запроса из контекста.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment определяет режим работы logger.
type Environment string

// Поддерживаемые режимы.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// RequestID - имя поля с идентификатором запроса.
const RequestID = "request_id"

// Rotation описывает запись логов в файл с ротацией.
type Rotation struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// Logger - обертка над zap.Logger, принимающая контекст в каждом методе.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает logger для окружения с заданным уровнем.
// Неизвестный или пустой уровень трактуется как info.
func NewLogger(env Environment, level string) (*Logger, error) {
	return NewLoggerWithRotation(env, level, nil)
}

// NewLoggerWithRotation создает logger, дублирующий записи в файл с ротацией.
func NewLoggerWithRotation(env Environment, level string, rotation *Rotation) (*Logger, error) {
	var cfg zap.Config
	if env == Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	if rotation != nil && rotation.Filename != "" {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "timestamp"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   rotation.Filename,
				MaxSize:    rotation.MaxSizeMB,
				MaxAge:     rotation.MaxAgeDays,
				MaxBackups: rotation.MaxBackups,
				Compress:   rotation.Compress,
			}),
			cfg.Level,
		)

		zl = zl.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	return &Logger{l: zl}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With возвращает новый logger с дополнительными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

// Info пишет запись уровня info.
func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

// Warn пишет запись уровня warn.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

// Error пишет запись уровня error.
func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

// Debug пишет запись уровня debug.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферы. Ошибки синхронизации stdout/stderr игнорируются.
func (l *Logger) Sync() error {
	err := l.l.Sync()
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "/dev/stderr") || strings.Contains(msg, "/dev/stdout") {
		return nil
	}

	if _, writeErr := fmt.Fprintf(os.Stderr, "sync logger: %v\n", err); writeErr != nil {
		return fmt.Errorf("sync logger: %w", writeErr)
	}
	return fmt.Errorf("sync logger: %w", err)
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
