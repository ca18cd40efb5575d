// Package dto содержит структуры запросов и ответов HTTP API доски.
package dto

import (
	"time"

	"noteboard/internal/board/domain/state"
)

// FieldChangeRequest изменяет одно поле формы.
type FieldChangeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// CreateNoteRequest задает поля формы перед отправкой. Отсутствующие поля не меняются.
type CreateNoteRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Note представляет заметку на доске.
type Note struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageKey    string    `json:"image_key,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Form представляет форму создания заметки.
type Form struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageKey    string `json:"image_key"`
}

// BoardResponse содержит список заметок и форму.
type BoardResponse struct {
	Notes []Note `json:"notes"`
	Form  Form   `json:"form"`
}

// ErrorResponse описывает ошибку.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// FromState строит ответ по снимку состояния доски.
func FromState(s state.State) BoardResponse {
	notes := make([]Note, 0, len(s.Notes))
	for _, n := range s.Notes {
		notes = append(notes, Note{
			ID:          n.ID,
			Name:        n.Name,
			Description: n.Description,
			ImageKey:    n.ImageKey,
			ImageURL:    n.ImageURL,
			CreatedAt:   n.CreatedAt,
		})
	}

	return BoardResponse{
		Notes: notes,
		Form: Form{
			Name:        s.Form.Name,
			Description: s.Form.Description,
			ImageKey:    s.Form.ImageKey,
		},
	}
}
