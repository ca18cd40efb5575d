package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// SessionConfig - параметры cookie сессии.
type SessionConfig struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// NewSessionMiddleware назначает запросу ключ сессии по cookie, выдавая новую
// cookie при ее отсутствии. Для аутентифицированных запросов ключ включает субъект токена.
func NewSessionMiddleware(cfg SessionConfig) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		sessionID := ctx.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				Secure:   cfg.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		if subject := Subject(ctx); subject != "" {
			sessionID = subject + ":" + sessionID
		}

		ctx.Locals(LocalSessionID, sessionID)
		return ctx.Next()
	}
}
