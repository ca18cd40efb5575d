// Package postgres реализует Record Store поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

// Сообщения об ошибках.
const (
	ErrListNotes  = "failed to list notes"
	ErrScanNote   = "failed to scan note"
	ErrIterate    = "error iterating rows"
	ErrCreateNote = "failed to create note"
	ErrDeleteNote = "failed to delete note"
	ErrPing       = "failed to ping database"
)

const (
	queryList = `SELECT id, name, description, COALESCE(image, ''), created_at
         FROM notes
         ORDER BY created_at, id`

	queryCreate = `INSERT INTO notes (name, description, image)
         VALUES ($1, $2, NULLIF($3, ''))
         RETURNING id, name, description, COALESCE(image, ''), created_at`

	queryDelete = `DELETE FROM notes WHERE id = $1
         RETURNING id, name, description, COALESCE(image, ''), created_at`
)

// Коды SQLSTATE, которые означают неверные входные данные.
const (
	codeInvalidTextRepresentation = "22P02"
	classIntegrityViolation       = "23"
)

// Pool - часть pgxpool.Pool, нужная хранилищу.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

var (
	_ stores.RecordStore = (*NoteStore)(nil)
	_ stores.Pinger      = (*NoteStore)(nil)
)

// NoteStore реализует stores.RecordStore.
type NoteStore struct {
	pool Pool
}

// NewNoteStore создает хранилище заметок.
func NewNoteStore(pool Pool) *NoteStore {
	return &NoteStore{pool: pool}
}

// List возвращает все заметки в порядке создания.
func (s *NoteStore) List(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.List"))
	log.Debug(ctx, "listing notes")

	rows, err := s.pool.Query(ctx, queryList)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, classify(err))
	}
	defer rows.Close()

	notes := make([]entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Name, &note.Description, &note.ImageKey, &note.CreatedAt); err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, classify(err))
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterate, classify(err))
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}

// Create сохраняет заметку. Пустой ImageKey хранится как NULL.
func (s *NoteStore) Create(ctx context.Context, input entities.NoteInput) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Create"))

	if err := input.Validate(); err != nil {
		log.Debug(ctx, "invalid note input", zap.Error(err))
		return entities.Note{}, err
	}

	var note entities.Note
	err := s.pool.QueryRow(ctx, queryCreate, input.Name, input.Description, input.ImageKey).
		Scan(&note.ID, &note.Name, &note.Description, &note.ImageKey, &note.CreatedAt)
	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return entities.Note{}, fmt.Errorf("%s: %w", ErrCreateNote, classify(err))
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// Delete удаляет заметку и возвращает удаленную запись.
func (s *NoteStore) Delete(ctx context.Context, id string) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", id))

	var note entities.Note
	err := s.pool.QueryRow(ctx, queryDelete, id).
		Scan(&note.ID, &note.Name, &note.Description, &note.ImageKey, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isCode(err, codeInvalidTextRepresentation) {
			log.Debug(ctx, "note not found", zap.String("noteID", id))
			return entities.Note{}, fmt.Errorf("%s: note %q: %w", ErrDeleteNote, id, entities.ErrNotFound)
		}
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return entities.Note{}, fmt.Errorf("%s: %w", ErrDeleteNote, classify(err))
	}

	return note, nil
}

// Ping проверяет соединение с базой.
func (s *NoteStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPing, classify(err))
	}
	return nil
}

// classify относит ошибку драйвера к категории. Отмена контекста сохраняется как есть.
func classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case isCode(err, codeInvalidTextRepresentation), isClass(err, classIntegrityViolation):
		return fmt.Errorf("%w: %w", entities.ErrValidation, err)
	default:
		return fmt.Errorf("%w: %w", entities.ErrTransientNetwork, err)
	}
}

func isCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isClass(err error, class string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == class
}
