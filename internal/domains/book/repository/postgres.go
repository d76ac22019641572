package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	authormodel "library-api/internal/domains/author/model"
	"library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/pagination"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

const (
	// populatedColumns selects a book and its author, never the author's password.
	populatedColumns = `
        b.id::text, b.title, b.author_id::text, b.pages, b.publisher_name, b.publisher_country,
        b.created_at, b.updated_at,
        a.id::text, a.name, a.country, a.email, a.profile_image, a.created_at, a.updated_at`

	fromPopulated = `
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id`

	orderBy = `ORDER BY b.created_at ASC, b.id ASC`
)

func publisherArgs(p *model.Publisher) (name, country *string) {
	if p == nil {
		return nil, nil
	}
	return &p.Name, &p.Country
}

// Create inserts and reads the row back populated in one statement.
func (r *postgresRepository) Create(ctx context.Context, d model.Draft) (*model.Book, error) {
	name, country := publisherArgs(d.Publisher)
	query := `
        WITH b AS (
            INSERT INTO books (title, author_id, pages, publisher_name, publisher_country)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING *
        )
        SELECT ` + populatedColumns + `
        FROM b
        LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.db.QueryRow(ctx, query, d.Title, d.AuthorID, d.Pages, name, country))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.AuthorNotFoundViolation()
		}
		return nil, fmt.Errorf("failed to create book: %w", database.TranslateError(err, model.ErrBookNotFound))
	}
	return b, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := `SELECT ` + populatedColumns + fromPopulated + ` WHERE b.id = $1`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrBookNotFound)
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, p pagination.Params) ([]model.Book, error) {
	query := `SELECT ` + populatedColumns + fromPopulated + ` ` + orderBy + ` LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) SearchByTitle(ctx context.Context, prefix string) ([]model.Book, error) {
	query := `SELECT ` + populatedColumns + fromPopulated + ` WHERE lower(b.title) LIKE lower($1) ` + orderBy

	rows, err := r.db.Query(ctx, query, database.PrefixPattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) Update(ctx context.Context, id string, d model.Draft) (*model.Book, error) {
	name, country := publisherArgs(d.Publisher)
	query := `
        WITH b AS (
            UPDATE books
            SET title = $2,
                author_id = $3,
                pages = $4,
                publisher_name = $5,
                publisher_country = $6,
                updated_at = NOW()
            WHERE id = $1
            RETURNING *
        )
        SELECT ` + populatedColumns + `
        FROM b
        LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.db.QueryRow(ctx, query, id, d.Title, d.AuthorID, d.Pages, name, country))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.AuthorNotFoundViolation()
		}
		return nil, database.TranslateError(err, model.ErrBookNotFound)
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (*model.Book, error) {
	query := `
        WITH b AS (
            DELETE FROM books WHERE id = $1 RETURNING *
        )
        SELECT ` + populatedColumns + `
        FROM b
        LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrBookNotFound)
	}
	return b, nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b                model.Book
		publisherName    *string
		publisherCountry *string
		authorID         *string
		authorName       *string
		authorCountry    *string
		authorEmail      *string
		authorImage      *string
		authorCreatedAt  *time.Time
		authorUpdatedAt  *time.Time
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Pages,
		&publisherName,
		&publisherCountry,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorID,
		&authorName,
		&authorCountry,
		&authorEmail,
		&authorImage,
		&authorCreatedAt,
		&authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publisherName != nil || publisherCountry != nil {
		b.Publisher = &model.Publisher{Name: deref(publisherName), Country: deref(publisherCountry)}
	}
	if authorID != nil {
		b.Author = &authormodel.Author{
			ID:           *authorID,
			Name:         deref(authorName),
			Country:      deref(authorCountry),
			Email:        deref(authorEmail),
			ProfileImage: authorImage,
		}
		if authorCreatedAt != nil {
			b.Author.CreatedAt = *authorCreatedAt
		}
		if authorUpdatedAt != nil {
			b.Author.UpdatedAt = *authorUpdatedAt
		}
	}
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
