// Package app содержит доску заметок: состояние сессии и вызовы внешних хранилищ.
package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
	"noteboard/internal/board/ports/services"
	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

// Константы для логирования.
const (
	LogBoardInitialize = "board: initialize"
	LogBoardRefresh    = "board: refresh"
	LogBoardRefreshed  = "board: notes refreshed"
	LogBoardUpload     = "board: upload image"
	LogBoardCreate     = "board: create note"
	LogBoardCreateSkip = "board: form incomplete, create skipped"
	LogBoardDelete     = "board: delete note"

	ErrorListNotesFailed    = "failed to list notes"
	ErrorResolveImageFailed = "failed to resolve image"
	ErrorUploadImageFailed  = "failed to upload image"
	ErrorCreateNoteFailed   = "failed to create note"
	ErrorDeleteNoteFailed   = "failed to delete note"
)

var _ services.Board = (*NoteBoard)(nil)

// Option настраивает NoteBoard.
type Option func(*NoteBoard)

// WithResolveLimit ограничивает число одновременных разрешений изображений.
// Ноль или отрицательное значение снимает ограничение.
func WithResolveLimit(limit int) Option {
	return func(b *NoteBoard) {
		b.resolveLimit = limit
	}
}

// NoteBoard - доска заметок одной сессии.
//
// Переходы состояния выполняются под мьютексом, удаленные вызовы - без него,
// поэтому ввод пользователя принимается, пока запрос к хранилищу не завершен.
// Параллельные обновления не отменяют друг друга: побеждает последняя запись.
type NoteBoard struct {
	records stores.RecordStore
	blobs   stores.BlobStore

	resolveLimit int

	mu    sync.Mutex
	state state.State

	initOnce sync.Once
}

// NewNoteBoard создает пустую доску.
func NewNoteBoard(records stores.RecordStore, blobs stores.BlobStore, opts ...Option) *NoteBoard {
	b := &NoteBoard{
		records: records,
		blobs:   blobs,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize выполняет первое обновление. Повторные вызовы ничего не делают и возвращают nil.
func (b *NoteBoard) Initialize(ctx context.Context) error {
	var err error
	b.initOnce.Do(func() {
		logger.Log(ctx).Debug(ctx, LogBoardInitialize)
		err = b.run(ctx, b.dispatch(state.Initialized{}), nil)
	})
	return err
}

// Refresh перечитывает список заметок и разрешает все ключи изображений в URL.
// Список на доске заменяется только если разрешились все изображения.
func (b *NoteBoard) Refresh(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Debug(ctx, LogBoardRefresh)

	notes, err := b.records.List(ctx)
	if err != nil {
		b.logFailure(ctx, ErrorListNotesFailed, err)
		return fmt.Errorf("%s: %w", ErrorListNotesFailed, err)
	}

	if err := b.resolveImages(ctx, notes); err != nil {
		return err
	}

	b.dispatch(state.NotesLoaded{Notes: notes})

	log.Debug(ctx, LogBoardRefreshed, zap.Int("notes", len(notes)))
	return nil
}

// resolveImages заполняет ImageURL у всех заметок с ключом. Каждая горутина
// пишет только в свой элемент среза.
func (b *NoteBoard) resolveImages(ctx context.Context, notes []entities.Note) error {
	g, gctx := errgroup.WithContext(ctx)
	if b.resolveLimit > 0 {
		g.SetLimit(b.resolveLimit)
	}

	for i := range notes {
		if !notes[i].HasImage() {
			continue
		}

		g.Go(func() error {
			key := notes[i].ImageKey

			url, err := b.blobs.Get(gctx, key)
			if err != nil {
				b.logFailure(gctx, ErrorResolveImageFailed, err, zap.String("key", key))
				return fmt.Errorf("%s %q: %w", ErrorResolveImageFailed, key, err)
			}

			notes[i].ImageURL = url
			return nil
		})
	}

	return g.Wait()
}

// OnImageSelected запоминает имя файла в форме до начала загрузки и затем
// загружает файл под этим именем. Ошибка загрузки не откатывает форму.
func (b *NoteBoard) OnImageSelected(ctx context.Context, file *entities.ImageFile) error {
	if file == nil || file.Name == "" {
		return nil
	}

	return b.run(ctx, b.dispatch(state.ImageSelected{Filename: file.Name}), file)
}

// OnFieldChange обновляет поле формы name или description.
func (b *NoteBoard) OnFieldChange(field, value string) error {
	f, err := state.ParseField(field)
	if err != nil {
		return fmt.Errorf("%w: %q", err, field)
	}

	b.dispatch(state.FieldChanged{Field: f, Value: value})
	return nil
}

// CreateNote отправляет форму без изменений. При пустых name или description
// ничего не делает. После успешного создания форма очищается и список
// перечитывается; при ошибке форма остается как была.
func (b *NoteBoard) CreateNote(ctx context.Context) error {
	effects := b.dispatch(state.CreateRequested{})
	if len(effects) == 0 {
		logger.Log(ctx).Debug(ctx, LogBoardCreateSkip)
		return nil
	}

	return b.run(ctx, effects, nil)
}

// DeleteNote сразу убирает заметку из списка, затем удаляет ее в Record Store.
// При ошибке удаления заметка не возвращается в список до следующего Refresh.
func (b *NoteBoard) DeleteNote(ctx context.Context, id string) error {
	return b.run(ctx, b.dispatch(state.DeleteRequested{ID: id}), nil)
}

// Snapshot возвращает копию состояния доски.
func (b *NoteBoard) Snapshot() state.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

func (b *NoteBoard) dispatch(ev state.Event) []state.Effect {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, effects := state.Reduce(b.state, ev)
	b.state = next
	return effects
}

// run выполняет эффекты по порядку и останавливается на первой ошибке.
func (b *NoteBoard) run(ctx context.Context, effects []state.Effect, file *entities.ImageFile) error {
	for _, effect := range effects {
		var err error

		switch e := effect.(type) {
		case state.Refresh:
			err = b.Refresh(ctx)
		case state.UploadImage:
			err = b.upload(ctx, e.Key, file)
		case state.SubmitNote:
			err = b.submit(ctx, e.Input)
		case state.RemoveNote:
			err = b.remove(ctx, e.ID)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func (b *NoteBoard) upload(ctx context.Context, key string, file *entities.ImageFile) error {
	logger.Log(ctx).Info(ctx, LogBoardUpload, zap.String("key", key), zap.Int64("size", file.Size))

	if err := b.blobs.Put(ctx, key, *file); err != nil {
		b.logFailure(ctx, ErrorUploadImageFailed, err, zap.String("key", key))
		return fmt.Errorf("%s: %w", ErrorUploadImageFailed, err)
	}
	return nil
}

func (b *NoteBoard) submit(ctx context.Context, input entities.NoteInput) error {
	log := logger.Log(ctx)

	note, err := b.records.Create(ctx, input)
	if err != nil {
		b.logFailure(ctx, ErrorCreateNoteFailed, err)
		return fmt.Errorf("%s: %w", ErrorCreateNoteFailed, err)
	}

	log.Info(ctx, LogBoardCreate, zap.String("note_id", note.ID), zap.Bool("with_image", note.HasImage()))

	return b.run(ctx, b.dispatch(state.CreateSucceeded{}), nil)
}

func (b *NoteBoard) remove(ctx context.Context, id string) error {
	logger.Log(ctx).Info(ctx, LogBoardDelete, zap.String("note_id", id))

	if _, err := b.records.Delete(ctx, id); err != nil {
		b.logFailure(ctx, ErrorDeleteNoteFailed, err, zap.String("note_id", id))
		return fmt.Errorf("%s: %w", ErrorDeleteNoteFailed, err)
	}
	return nil
}

// logFailure выбирает уровень записи по категории ошибки.
func (b *NoteBoard) logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	log := logger.Log(ctx)
	kind := entities.KindOf(err)
	fields = append(fields, zap.String("kind", string(kind)), zap.Error(err))

	switch kind {
	case entities.KindCanceled:
		log.Debug(ctx, msg, fields...)
	case entities.KindValidation, entities.KindNotFound:
		log.Warn(ctx, msg, fields...)
	default:
		log.Error(ctx, msg, fields...)
	}
}
