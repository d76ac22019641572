package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/apperr"
	"library-api/internal/shared/pagination"
)

var (
	columns = []string{
		"id", "title", "author_id", "pages", "publisher_name", "publisher_country", "created_at", "updated_at",
		"a_id", "a_name", "a_country", "a_email", "a_profile_image", "a_created_at", "a_updated_at",
	}
	ts = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
)

const (
	bookID   = "11111111-1111-4111-8111-111111111111"
	authorID = "22222222-2222-4222-8222-222222222222"
)

func sp(s string) *string { return &s }
func ip(i int) *int       { return &i }

func withAuthor(rows *pgxmock.Rows, id, title string) *pgxmock.Rows {
	return rows.AddRow(id, title, sp(authorID), ip(300), sp("Planeta"), sp("SPAIN"), ts, ts,
		sp(authorID), sp("Isabel Allende"), sp("CHILE"), sp("ia@x.com"), (*string)(nil), &ts, &ts)
}

func orphan(rows *pgxmock.Rows, id, title string) *pgxmock.Rows {
	return rows.AddRow(id, title, (*string)(nil), (*int)(nil), (*string)(nil), (*string)(nil), ts, ts,
		(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil))
}

func TestPostgresRepository_GetByID(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		check     func(t *testing.T, b *model.Book, err error)
	}{
		{
			name: "populated author",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`LEFT JOIN authors a ON a.id = b.author_id WHERE b.id = \$1`).
					WithArgs(bookID).
					WillReturnRows(withAuthor(pgxmock.NewRows(columns), bookID, "La casa de los espíritus"))
			},
			check: func(t *testing.T, b *model.Book, err error) {
				require.NoError(t, err)
				require.NotNil(t, b.Author)
				assert.Equal(t, "Isabel Allende", b.Author.Name)
				assert.Equal(t, 300, *b.Pages)
				assert.Equal(t, &model.Publisher{Name: "Planeta", Country: "SPAIN"}, b.Publisher)
			},
		},
		{
			name: "no author, no publisher",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE b.id = \$1`).
					WithArgs(bookID).
					WillReturnRows(orphan(pgxmock.NewRows(columns), bookID, "Anonymous"))
			},
			check: func(t *testing.T, b *model.Book, err error) {
				require.NoError(t, err)
				assert.Nil(t, b.Author)
				assert.Nil(t, b.Publisher)
				assert.Nil(t, b.Pages)
			},
		},
		{
			name: "missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE b.id = \$1`).
					WithArgs(bookID).
					WillReturnError(pgx.ErrNoRows)
			},
			check: func(t *testing.T, b *model.Book, err error) {
				assert.ErrorIs(t, err, model.ErrBookNotFound)
				assert.ErrorIs(t, err, apperr.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)
			b, err := NewPostgresRepository(mock).GetByID(context.Background(), bookID)
			tt.check(t, b, err)
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	draft := model.Draft{
		Title:     "Paula",
		AuthorID:  sp(authorID),
		Pages:     ip(300),
		Publisher: &model.Publisher{Name: "Planeta", Country: "SPAIN"},
	}

	t.Run("inserted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO books`).
			WithArgs("Paula", draft.AuthorID, draft.Pages, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(withAuthor(pgxmock.NewRows(columns), bookID, "Paula"))

		b, err := NewPostgresRepository(mock).Create(context.Background(), draft)
		require.NoError(t, err)
		assert.Equal(t, bookID, b.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("author removed concurrently", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO books`).
			WithArgs("Paula", draft.AuthorID, draft.Pages, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"books\" violates foreign key constraint"})

		_, err = NewPostgresRepository(mock).Create(context.Background(), draft)
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "author")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(columns)
	withAuthor(rows, "b1", "First")
	orphan(rows, "b2", "Second")

	mock.ExpectQuery(`ORDER BY b.created_at ASC, b.id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(rows)

	got, err := NewPostgresRepository(mock).List(context.Background(), pagination.Params{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotNil(t, got[0].Author)
	assert.Nil(t, got[1].Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SearchByTitle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE lower\(b\.title\) LIKE lower\(\$1\)`).
		WithArgs(`el\_%`).
		WillReturnRows(pgxmock.NewRows(columns))

	got, err := NewPostgresRepository(mock).SearchByTitle(context.Background(), "el_")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE books`).
		WithArgs(bookID, "Paula", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPostgresRepository(mock).Update(context.Background(), bookID, model.Draft{Title: "Paula"})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`DELETE FROM books WHERE id = \$1`).
		WithArgs(bookID).
		WillReturnRows(withAuthor(pgxmock.NewRows(columns), bookID, "Paula"))

	b, err := NewPostgresRepository(mock).Delete(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, bookID, b.ID)
	assert.NotNil(t, b.Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CountError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books`).
		WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresRepository(mock).Count(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
