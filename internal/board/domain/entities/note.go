// Package entities defines the domain entities of the note board.
package entities

import (
	"io"
	"time"
)

// Note представляет заметку. ImageKey хранится в Record Store,
// ImageURL заполняется только в отображаемой копии после разрешения ключа.
type Note struct {
	ID          string
	Name        string
	Description string
	ImageKey    string
	ImageURL    string
	CreatedAt   time.Time
}

// HasImage сообщает, ссылается ли заметка на объект в Blob Store.
func (n Note) HasImage() bool {
	return n.ImageKey != ""
}

// RenderKey возвращает ключ для отрисовки списка: ID, а при его отсутствии имя.
func (n Note) RenderKey() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Name
}

// NoteInput - данные для создания заметки в Record Store.
type NoteInput struct {
	Name        string
	Description string
	ImageKey    string
}

// Validate проверяет обязательные поля.
func (in NoteInput) Validate() error {
	if in.Name == "" {
		return NewValidationError("name")
	}
	if in.Description == "" {
		return NewValidationError("description")
	}
	return nil
}

// FormState - состояние формы создания заметки.
// ImageKey всегда содержит исходное имя файла, а не URL.
type FormState struct {
	Name        string
	Description string
	ImageKey    string
}

// Ready сообщает, заполнены ли обязательные поля.
func (f FormState) Ready() bool {
	return f.Name != "" && f.Description != ""
}

// Input превращает форму в запрос на создание без изменений.
func (f FormState) Input() NoteInput {
	return NoteInput{
		Name:        f.Name,
		Description: f.Description,
		ImageKey:    f.ImageKey,
	}
}

// ImageFile - выбранный пользователем файл изображения.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
