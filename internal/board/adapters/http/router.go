// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"noteboard/internal/board/adapters/http/board"
	"noteboard/internal/board/adapters/http/middleware"
	"noteboard/internal/board/ports/services"
)

// RouterConfig - параметры маршрутизации.
// Tokens включает проверку токенов, nil отключает ее.
type RouterConfig struct {
	Session         middleware.SessionConfig
	Tokens          services.TokenService
	TokenCookieName string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, registry services.BoardRegistry, view *board.View, cfg RouterConfig) {
	handler := board.NewHandler(registry, view)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	if cfg.Tokens != nil {
		app.Use(middleware.NewAuthMiddleware(cfg.Tokens, cfg.TokenCookieName))
	}
	app.Use(middleware.NewSessionMiddleware(cfg.Session))

	// HTML страница.
	app.Get("/", handler.Page)
	app.Post("/form", handler.ChangeForm)
	app.Post("/notes", handler.CreateNote)
	app.Post("/image", handler.UploadImage)
	app.Post("/notes/:note_id/delete", handler.DeleteNote)
	app.Post("/refresh", handler.Refresh)

	// JSON API. Доска привязана к cookie сессии: клиент без cookie получает
	// новую доску на каждый запрос, их число ограничено app.WithMaxSessions.
	api := app.Group("/api/v1/board")
	api.Get("/", handler.GetBoard)
	api.Post("/refresh", handler.APIRefresh)
	api.Patch("/form", handler.APIChangeForm)
	api.Post("/image", handler.APIUploadImage)
	api.Post("/notes", handler.APICreateNote)
	api.Delete("/notes/:note_id", handler.APIDeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
