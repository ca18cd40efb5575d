// Package services определяет интерфейсы прикладных сервисов.
package services

import (
	"context"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
)

// Board - доска заметок одной сессии.
type Board interface {
	// Initialize выполняет первое обновление списка ровно один раз.
	Initialize(ctx context.Context) error

	// Refresh перечитывает список и разрешает ссылки на изображения.
	Refresh(ctx context.Context) error

	// OnImageSelected запоминает имя файла в форме и загружает файл.
	OnImageSelected(ctx context.Context, file *entities.ImageFile) error

	// OnFieldChange обновляет текстовое поле формы.
	OnFieldChange(field, value string) error

	// CreateNote отправляет форму, очищает ее и обновляет список.
	CreateNote(ctx context.Context) error

	// DeleteNote убирает заметку из списка и удаляет ее в Record Store.
	DeleteNote(ctx context.Context, id string) error

	// Snapshot возвращает копию текущего состояния.
	Snapshot() state.State
}

// BoardRegistry выдает доску по ключу сессии, создавая ее при первом обращении.
type BoardRegistry interface {
	Board(sessionID string) Board
}
