// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT и SIGTERM либо отмены родительского контекста.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"noteboard/pkg/logger"
)

// Hook - шаг завершения работы.
type Hook func(context.Context) error

// Wait блокирует выполнение до сигнала SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Log(ctx).Info(ctx, "shutdown signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Log(ctx).Info(ctx, "shutdown requested by context")
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Log(ctx).Warn(ctx, "shutdown hook failed", zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Log(ctx).Warn(ctx, "shutdown timeout exceeded", zap.Duration("timeout", timeout))
	}
}
