package middleware

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteboard/internal/board/app/dto"
	"noteboard/internal/board/domain/entities"
	"noteboard/pkg/logger"
)

// Константы восстановления после паники.
const (
	LogHandlerPanic = "board handler panicked"

	APIPrefix = "/api/"

	msgPanicAPI  = "internal error"
	msgPanicPage = `<!DOCTYPE html><html><body><p>Something went wrong.</p><p><a href="/">Back to notes</a></p></body></html>`
)

// NewRecoveryMiddleware перехватывает панику обработчика. Запросы к JSON API
// получают dto.ErrorResponse, страницы - короткую HTML-страницу со ссылкой на доску.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			requestCtx := UserContext(ctx)
			logger.Log(requestCtx).Error(requestCtx, LogHandlerPanic,
				zap.Error(panicError(r)),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.String("session_id", SessionID(ctx)),
				zap.ByteString("stack", debug.Stack()),
			)

			ctx.Status(fiber.StatusInternalServerError)
			if strings.HasPrefix(ctx.Path(), APIPrefix) {
				err = ctx.JSON(dto.ErrorResponse{Error: msgPanicAPI, Kind: string(entities.KindUnknown)})
				return
			}
			ctx.Type("html", "utf-8")
			err = ctx.SendString(msgPanicPage)
		}()

		return ctx.Next()
	}
}

func panicError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return fmt.Errorf("panic: %v", r)
}
