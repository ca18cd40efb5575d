package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteboard/internal/board/ports/services"
	"noteboard/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoToken            = "no access token provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorUnauthorized       = "unauthorized"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware проверяет токен из заголовка Authorization или из cookie cookieName.
func NewAuthMiddleware(tokens services.TokenService, cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := UserContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := ctx.Cookies(cookieName)
		if header := ctx.Get(fiber.HeaderAuthorization); header != "" {
			if !strings.HasPrefix(header, bearerPrefix) {
				log.Debug(requestCtx, ErrorInvalidTokenFormat)
				return unauthorized(ctx, ErrorInvalidTokenFormat)
			}
			token = strings.TrimPrefix(header, bearerPrefix)
		}

		if token == "" {
			log.Debug(requestCtx, ErrorNoToken)
			return unauthorized(ctx, ErrorNoToken)
		}

		subject, err := tokens.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorUnauthorized, zap.Error(err))
			return unauthorized(ctx, ErrorUnauthorized)
		}

		ctx.Locals(LocalSubject, subject)
		ctx.Locals(LocalUserContext, logger.NewContext(requestCtx, logger.Log(requestCtx).With(zap.String("subject", subject))))

		return ctx.Next()
	}
}

func unauthorized(ctx fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}
