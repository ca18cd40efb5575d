package middleware

import (
	"github.com/gofiber/fiber/v3"

	"noteboard/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или создает новый
// и кладет его в контекст запроса.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(LocalUserContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}
