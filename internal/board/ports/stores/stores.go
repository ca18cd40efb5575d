// Package stores определяет контракты внешних хранилищ заметок и изображений.
package stores

import (
	"context"

	"noteboard/internal/board/domain/entities"
)

// RecordStore - удаленное хранилище заметок.
type RecordStore interface {
	// List возвращает все заметки. ImageKey содержит ключ Blob Store.
	List(ctx context.Context) ([]entities.Note, error)

	// Create сохраняет заметку и возвращает ее с назначенным ID.
	// Пустые name/description дают entities.ErrValidation.
	Create(ctx context.Context, input entities.NoteInput) (entities.Note, error)

	// Delete удаляет заметку. Отсутствующий id дает entities.ErrNotFound.
	Delete(ctx context.Context, id string) (entities.Note, error)
}

// BlobStore - удаленное хранилище объектов по ключу.
type BlobStore interface {
	// Put перезаписывает объект по ключу. Ошибки передачи дают entities.ErrStorage.
	Put(ctx context.Context, key string, file entities.ImageFile) error

	// Get возвращает URL, по которому объект можно скачать напрямую.
	// Отсутствующий ключ дает entities.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}
