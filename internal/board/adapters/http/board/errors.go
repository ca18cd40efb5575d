package board

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"

	"noteboard/internal/board/app/dto"
	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
)

// Сообщения об ошибках для пользователя.
const (
	MsgValidation   = "Name and description are required."
	MsgNotFound     = "The note or image no longer exists."
	MsgStorage      = "The image could not be stored."
	MsgTransient    = "The service is temporarily unavailable, try again."
	MsgCanceled     = "The request was canceled."
	MsgUnknownField = "Unknown form field."
	MsgInternal     = "Something went wrong."
)

// FlashCookie - cookie с сообщением об ошибке последнего действия.
const FlashCookie = "noteboard_flash"

// statusFor сопоставляет категорию ошибки HTTP статусу и сообщению.
func statusFor(err error) (int, string) {
	if errors.Is(err, state.ErrUnknownField) {
		return fiber.StatusBadRequest, MsgUnknownField
	}

	switch entities.KindOf(err) {
	case entities.KindValidation:
		return fiber.StatusUnprocessableEntity, MsgValidation
	case entities.KindNotFound:
		return fiber.StatusNotFound, MsgNotFound
	case entities.KindStorage:
		return fiber.StatusBadGateway, MsgStorage
	case entities.KindTransient:
		return fiber.StatusServiceUnavailable, MsgTransient
	case entities.KindCanceled:
		return fiber.StatusRequestTimeout, MsgCanceled
	default:
		return fiber.StatusInternalServerError, MsgInternal
	}
}

// handleError отправляет ошибку в формате JSON.
func handleError(ctx fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if err := ctx.Status(status).JSON(dto.ErrorResponse{
		Error: msg,
		Kind:  string(entities.KindOf(err)),
	}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

func setFlash(ctx fiber.Ctx, msg string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// takeFlash читает сообщение и удаляет cookie.
func takeFlash(ctx fiber.Ctx) string {
	raw := ctx.Cookies(FlashCookie)
	if raw == "" {
		return ""
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}
