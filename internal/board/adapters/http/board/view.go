package board

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/domain/state"
)

//go:embed templates/board.html
var boardTemplate string

// pageData - данные шаблона страницы.
type pageData struct {
	Notes []entities.Note
	Form  entities.FormState
	Flash string
}

// View отрисовывает страницу доски.
type View struct {
	tmpl *template.Template
}

// NewView разбирает встроенный шаблон страницы.
func NewView() (*View, error) {
	tmpl, err := template.New("board").Parse(boardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse board template: %w", err)
	}
	return &View{tmpl: tmpl}, nil
}

// Render возвращает HTML страницы для снимка состояния и сообщения об ошибке.
func (v *View) Render(s state.State, flash string) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, pageData{Notes: s.Notes, Form: s.Form, Flash: flash}); err != nil {
		return nil, fmt.Errorf("render board: %w", err)
	}
	return buf.Bytes(), nil
}
