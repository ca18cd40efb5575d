// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи fiber.Ctx.Locals.
const (
	LocalUserContext = "userContext"
	LocalSessionID   = "sessionID"
	LocalSubject     = "subject"
)

// UserContext возвращает контекст запроса с logger и идентификатором запроса.
func UserContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// SessionID возвращает ключ сессии, назначенный NewSessionMiddleware.
func SessionID(ctx fiber.Ctx) string {
	id, _ := ctx.Locals(LocalSessionID).(string)
	return id
}

// Subject возвращает субъект токена, если запрос аутентифицирован.
func Subject(ctx fiber.Ctx) string {
	subject, _ := ctx.Locals(LocalSubject).(string)
	return subject
}
