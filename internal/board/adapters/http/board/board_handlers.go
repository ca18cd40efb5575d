// Package board содержит HTTP-обработчики доски заметок: HTML страницу и JSON API.
package board

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteboard/internal/board/adapters/http/middleware"
	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
	"noteboard/internal/board/ports/services"
	"noteboard/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerPage       = "handling board page request"
	LogHandlerAction     = "handling board action"
	LogBoardActionFailed = "board action failed"
	LogBoardInitFailed   = "board initialization failed"
	LogRenderFailed      = "failed to render board"

	ErrMsgOpenUploadedFile = "failed to open uploaded file"

	formFieldImage = "image"
	paramNoteID    = "note_id"
)

// Handler обработчик HTTP-запросов доски.
type Handler struct {
	registry services.BoardRegistry
	view     *View
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(registry services.BoardRegistry, view *View) *Handler {
	return &Handler{
		registry: registry,
		view:     view,
	}
}

// board возвращает доску сессии и результат ее первой инициализации.
func (h *Handler) board(ctx fiber.Ctx) (services.Board, context.Context, error) {
	userCtx := middleware.UserContext(ctx)
	b := h.registry.Board(middleware.SessionID(ctx))

	if err := b.Initialize(userCtx); err != nil {
		logger.Log(userCtx).Warn(userCtx, LogBoardInitFailed,
			zap.String("kind", string(entities.KindOf(err))), zap.Error(err))
		return b, userCtx, err
	}
	return b, userCtx, nil
}

// Page отрисовывает доску.
func (h *Handler) Page(ctx fiber.Ctx) error {
	b, userCtx, initErr := h.board(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Page"))
	log.Debug(userCtx, LogHandlerPage)

	// Доска без загруженного списка перечитывается при каждом открытии страницы.
	if initErr == nil && !b.Snapshot().Loaded {
		initErr = b.Refresh(userCtx)
	}

	flash := takeFlash(ctx)
	if initErr != nil {
		_, flash = statusFor(initErr)
	}

	body, err := h.view.Render(b.Snapshot(), flash)
	if err != nil {
		log.Error(userCtx, LogRenderFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", LogRenderFailed, err)
	}

	ctx.Type("html", "utf-8")
	if err := ctx.Send(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ChangeForm сохраняет введенные name и description.
func (h *Handler) ChangeForm(ctx fiber.Ctx) error {
	return h.action(ctx, "Handler.ChangeForm", func(_ context.Context, b services.Board) error {
		return applyDraft(b, ctx.FormValue(string(state.FieldName)), ctx.FormValue(string(state.FieldDescription)))
	})
}

// CreateNote сохраняет введенные поля и отправляет форму.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	return h.action(ctx, "Handler.CreateNote", func(userCtx context.Context, b services.Board) error {
		if err := applyDraft(b, ctx.FormValue(string(state.FieldName)), ctx.FormValue(string(state.FieldDescription))); err != nil {
			return err
		}
		return b.CreateNote(userCtx)
	})
}

// UploadImage сохраняет отправленные вместе с файлом поля формы и загружает
// выбранный файл. Запрос без файла только сохраняет поля.
func (h *Handler) UploadImage(ctx fiber.Ctx) error {
	return h.action(ctx, "Handler.UploadImage", func(userCtx context.Context, b services.Board) error {
		if err := applyPostedFields(ctx, b); err != nil {
			return err
		}
		return h.selectImage(ctx, userCtx, b)
	})
}

// DeleteNote удаляет заметку.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	return h.action(ctx, "Handler.DeleteNote", func(userCtx context.Context, b services.Board) error {
		return b.DeleteNote(userCtx, ctx.Params(paramNoteID))
	})
}

// Refresh перечитывает список заметок.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	return h.action(ctx, "Handler.Refresh", func(userCtx context.Context, b services.Board) error {
		return b.Refresh(userCtx)
	})
}

// action выполняет действие и перенаправляет на страницу. Ошибка показывается
// на странице одним сообщением.
func (h *Handler) action(ctx fiber.Ctx, name string, fn func(context.Context, services.Board) error) error {
	b, userCtx, initErr := h.board(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", name))
	log.Debug(userCtx, LogHandlerAction)

	err := fn(userCtx, b)
	if err == nil {
		err = initErr
	}

	if err != nil {
		_, msg := statusFor(err)
		log.Warn(userCtx, LogBoardActionFailed, zap.String("kind", string(entities.KindOf(err))), zap.Error(err))
		setFlash(ctx, msg)
	}

	return ctx.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (h *Handler) selectImage(ctx fiber.Ctx, userCtx context.Context, b services.Board) error {
	fh, err := ctx.FormFile(formFieldImage)
	if err != nil || fh == nil || fh.Filename == "" {
		return nil
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgOpenUploadedFile, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log(userCtx).Debug(userCtx, "failed to close uploaded file", zap.Error(err))
		}
	}()

	return b.OnImageSelected(userCtx, &entities.ImageFile{
		Name:        filepath.Base(fh.Filename),
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	})
}

// applyPostedFields переносит в форму только те поля, что присутствуют в запросе.
func applyPostedFields(ctx fiber.Ctx, b services.Board) error {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	for _, field := range []state.Field{state.FieldName, state.FieldDescription} {
		values, ok := form.Value[string(field)]
		if !ok || len(values) == 0 {
			continue
		}
		if err := b.OnFieldChange(string(field), values[0]); err != nil {
			return err
		}
	}
	return nil
}

func applyDraft(b services.Board, name, description string) error {
	if err := b.OnFieldChange(string(state.FieldName), name); err != nil {
		return err
	}
	return b.OnFieldChange(string(state.FieldDescription), description)
}
