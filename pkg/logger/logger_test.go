package logger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"noteboard/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("basic logging functionality", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id")

		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message")
			log.Info(ctx, "info message", zap.String("key", "value"))
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")
		})
	})

	t.Run("with creates new logger instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		newLog := log.With(zap.String("component", "test"))
		assert.NotNil(t, newLog)
		assert.NotSame(t, log, newLog)
	})
}

func TestNewLoggerWithRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noteboard.log")

	log, err := logger.NewLoggerWithRotation(logger.Production, "info", &logger.Rotation{
		Filename:  path,
		MaxSizeMB: 1,
	})
	require.NoError(t, err)

	log.Info(context.Background(), "written to file")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Run("prefers context logger", func(t *testing.T) {
		ctxLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("never returns nil", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestInitGlobalLogger(t *testing.T) {
	logger.SetGlobalLogger(nil)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	require.NoError(t, logger.InitGlobalLogger(logger.Production, "info"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
	second := logger.Log(context.Background())

	assert.Same(t, first, second)
}

func TestRequestID(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("generates id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Len(t, id, 36)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
