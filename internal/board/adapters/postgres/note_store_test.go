package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard/internal/board/adapters/postgres"
	"noteboard/internal/board/domain/entities"
	"noteboard/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

const (
	expectList   = "SELECT id, name, description, .+ FROM notes"
	expectCreate = "INSERT INTO notes \\(name, description, image\\)"
	expectDelete = "DELETE FROM notes WHERE id = \\$1"
)

var noteColumns = []string{"id", "name", "description", "image", "created_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestNoteStore_List(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("notes in creation order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectList).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("id-1", "first", "one", "cat.png", created).
				AddRow("id-2", "second", "two", "", created.Add(time.Minute)))

		notes, err := postgres.NewNoteStore(mock).List(ctx)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, entities.Note{ID: "id-1", Name: "first", Description: "one", ImageKey: "cat.png", CreatedAt: created}, notes[0])
		assert.False(t, notes[1].HasImage())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectList).WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteStore(mock).List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectList).WillReturnError(errDatabaseConnection)

		notes, err := postgres.NewNoteStore(mock).List(ctx)

		require.Error(t, err)
		assert.Nil(t, notes)
		assert.Contains(t, err.Error(), postgres.ErrListNotes)
		assert.ErrorIs(t, err, entities.ErrTransientNetwork)
		assert.ErrorIs(t, err, errDatabaseConnection)
	})

	t.Run("row error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectList).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("id-1", "first", "one", "", created).
				RowError(0, errDatabaseConnection))

		_, err = postgres.NewNoteStore(mock).List(ctx)

		require.Error(t, err)
		assert.Equal(t, entities.KindTransient, entities.KindOf(err))
	})
}

func TestNoteStore_Create(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	input := entities.NoteInput{Name: "groceries", Description: "milk", ImageKey: "milk.png"}

	t.Run("successful note creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectCreate).
			WithArgs(input.Name, input.Description, input.ImageKey).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("id-1", input.Name, input.Description, input.ImageKey, created))

		note, err := postgres.NewNoteStore(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "id-1", note.ID)
		assert.Equal(t, "milk.png", note.ImageKey)
		assert.Equal(t, created, note.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation error without query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		_, err = postgres.NewNoteStore(mock).Create(ctx, entities.NoteInput{Name: "n"})

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
		assert.Contains(t, err.Error(), "description")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("constraint violation is validation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectCreate).
			WithArgs(input.Name, input.Description, input.ImageKey).
			WillReturnError(&pgconn.PgError{Code: "23514", Message: "check constraint"})

		_, err = postgres.NewNoteStore(mock).Create(ctx, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrCreateNote)
		assert.Equal(t, entities.KindValidation, entities.KindOf(err))
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectCreate).
			WithArgs(input.Name, input.Description, input.ImageKey).
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteStore(mock).Create(ctx, input)

		require.Error(t, err)
		assert.Empty(t, note.ID)
		assert.Equal(t, entities.KindTransient, entities.KindOf(err))
	})

	t.Run("canceled context kept as is", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(expectCreate).
			WithArgs(input.Name, input.Description, input.ImageKey).
			WillReturnError(context.Canceled)

		_, err = postgres.NewNoteStore(mock).Create(ctx, input)

		assert.Equal(t, entities.KindCanceled, entities.KindOf(err))
	})
}

func TestNoteStore_Delete(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		id       string
		setup    func(mock pgxmock.PgxPoolIface)
		wantKind entities.Kind
		wantID   string
	}{
		{
			name: "deleted",
			id:   "id-1",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(expectDelete).WithArgs("id-1").
					WillReturnRows(pgxmock.NewRows(noteColumns).AddRow("id-1", "n", "d", "", created))
			},
			wantKind: entities.KindNone,
			wantID:   "id-1",
		},
		{
			name: "no such row",
			id:   "id-2",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(expectDelete).WithArgs("id-2").WillReturnError(pgx.ErrNoRows)
			},
			wantKind: entities.KindNotFound,
		},
		{
			name: "malformed id",
			id:   "not-a-uuid",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(expectDelete).WithArgs("not-a-uuid").
					WillReturnError(&pgconn.PgError{Code: "22P02"})
			},
			wantKind: entities.KindNotFound,
		},
		{
			name: "database connection error",
			id:   "id-3",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(expectDelete).WithArgs("id-3").WillReturnError(errDatabaseConnection)
			},
			wantKind: entities.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			note, err := postgres.NewNoteStore(mock).Delete(ctx, tt.id)

			assert.Equal(t, tt.wantKind, entities.KindOf(err))
			assert.Equal(t, tt.wantID, note.ID)
			if err != nil {
				assert.Contains(t, err.Error(), postgres.ErrDeleteNote)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoteStore_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errDatabaseConnection)

	store := postgres.NewNoteStore(mock)

	require.NoError(t, store.Ping(context.Background()))

	err = store.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrTransientNetwork)
}
