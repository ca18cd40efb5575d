package board

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteboard/internal/board/app/dto"
	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
	"noteboard/internal/board/ports/services"
	"noteboard/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidNoteID      = "invalid note id"
)

// GetBoard возвращает список заметок и форму.
func (h *Handler) GetBoard(ctx fiber.Ctx) error {
	b, _, err := h.board(ctx)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendBoard(ctx, fiber.StatusOK, b)
}

// APIRefresh перечитывает список заметок.
func (h *Handler) APIRefresh(ctx fiber.Ctx) error {
	b, userCtx, _ := h.board(ctx)

	if err := b.Refresh(userCtx); err != nil {
		logger.Log(userCtx).Warn(userCtx, "failed to refresh board", zap.Error(err))
		return handleError(ctx, err)
	}
	return sendBoard(ctx, fiber.StatusOK, b)
}

// APIChangeForm изменяет одно поле формы.
func (h *Handler) APIChangeForm(ctx fiber.Ctx) error {
	b, userCtx, _ := h.board(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.APIChangeForm"))

	var req dto.FieldChangeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if err := b.OnFieldChange(req.Field, req.Value); err != nil {
		log.Debug(userCtx, "form field rejected", zap.String("field", req.Field))
		return handleError(ctx, err)
	}
	return sendBoard(ctx, fiber.StatusOK, b)
}

// APIUploadImage загружает файл из поля image. Запрос без файла ничего не меняет.
func (h *Handler) APIUploadImage(ctx fiber.Ctx) error {
	b, userCtx, _ := h.board(ctx)

	if err := h.selectImage(ctx, userCtx, b); err != nil {
		logger.Log(userCtx).Warn(userCtx, "failed to upload image", zap.Error(err))
		return handleError(ctx, err)
	}
	return sendBoard(ctx, fiber.StatusOK, b)
}

// APICreateNote применяет переданные поля и отправляет форму.
// Если name или description пусты, ничего не создается и возвращается текущее состояние.
func (h *Handler) APICreateNote(ctx fiber.Ctx) error {
	b, userCtx, _ := h.board(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.APICreateNote"))

	var req dto.CreateNoteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().Body(&req); err != nil {
			log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
			return badRequest(ctx, ErrMsgInvalidRequestBody)
		}
	}

	if req.Name != nil {
		if err := b.OnFieldChange(string(state.FieldName), *req.Name); err != nil {
			return handleError(ctx, err)
		}
	}
	if req.Description != nil {
		if err := b.OnFieldChange(string(state.FieldDescription), *req.Description); err != nil {
			return handleError(ctx, err)
		}
	}

	submitted := b.Snapshot().Form.Ready()
	if err := b.CreateNote(userCtx); err != nil {
		log.Warn(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	status := fiber.StatusOK
	if submitted {
		status = fiber.StatusCreated
	}
	return sendBoard(ctx, status, b)
}

// APIDeleteNote удаляет заметку.
func (h *Handler) APIDeleteNote(ctx fiber.Ctx) error {
	b, userCtx, _ := h.board(ctx)

	noteID := ctx.Params(paramNoteID)
	if noteID == "" {
		return badRequest(ctx, ErrMsgInvalidNoteID)
	}

	if err := b.DeleteNote(userCtx, noteID); err != nil {
		logger.Log(userCtx).Warn(userCtx, "failed to delete note",
			zap.String("note_id", noteID), zap.String("kind", string(entities.KindOf(err))), zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendBoard(ctx fiber.Ctx, status int, b services.Board) error {
	if err := ctx.Status(status).JSON(dto.FromState(b.Snapshot())); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}
