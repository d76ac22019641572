package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"library-api/internal/domains/author/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/pagination"
	"library-api/pkg/cache"
)

// postgresRepository implements RepositoryInterface on PostgreSQL with a
// read-through cache for single-record reads.
type postgresRepository struct {
	db    database.DBTX
	cache cache.Cache
}

func NewPostgresRepository(db database.DBTX, c cache.Cache) RepositoryInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{
		db:    db,
		cache: c,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute

	// publicColumns never include the password hash.
	publicColumns = `id::text, name, country, email, profile_image, created_at, updated_at`
	orderBy       = `ORDER BY created_at ASC, id ASC`
)

func CacheKey(id string) string {
	return authorCacheKeyPrefix + id
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, country, email, password)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + publicColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.Country, a.Email, a.PasswordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", database.TranslateError(err, model.ErrAuthorNotFound))
	}
	return created, nil
}

// GetByID tries the cache first. Cache failures only cost a database round-trip.
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	key := CacheKey(id)

	var cached model.Author
	if hit, err := r.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache read failed")
	} else if hit {
		return &cached, nil
	}

	query := `SELECT ` + publicColumns + ` FROM authors WHERE id = $1`
	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrAuthorNotFound)
	}

	if err := r.cache.Set(ctx, key, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache write failed")
	}
	return a, nil
}

func (r *postgresRepository) FindByEmailWithSecret(ctx context.Context, email string) (*model.Author, error) {
	query := `
        SELECT ` + publicColumns + `, password
        FROM authors
        WHERE email = $1`

	var a model.Author
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Name,
		&a.Country,
		&a.Email,
		&a.ProfileImage,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PasswordHash,
	)
	if err != nil {
		return nil, database.TranslateError(err, model.ErrAuthorNotFound)
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, p pagination.Params) ([]model.Author, error) {
	query := `SELECT ` + publicColumns + ` FROM authors ` + orderBy + ` LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return collectAuthors(rows)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) SearchByName(ctx context.Context, prefix string) ([]model.Author, error) {
	query := `SELECT ` + publicColumns + ` FROM authors WHERE lower(name) LIKE lower($1) ` + orderBy

	rows, err := r.db.Query(ctx, query, database.PrefixPattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	return collectAuthors(rows)
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author, passwordHash *string) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $2,
            country = $3,
            email = $4,
            password = COALESCE($5, password),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + publicColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, a.ID, a.Name, a.Country, a.Email, passwordHash))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrAuthorNotFound)
	}

	r.invalidate(ctx, a.ID)
	return updated, nil
}

func (r *postgresRepository) UpdateProfileImage(ctx context.Context, id, path string) (*model.Author, error) {
	query := `
        UPDATE authors
        SET profile_image = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + publicColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, id, path))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrAuthorNotFound)
	}

	r.invalidate(ctx, id)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (*model.Author, error) {
	query := `DELETE FROM authors WHERE id = $1 RETURNING ` + publicColumns

	deleted, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, database.TranslateError(err, model.ErrAuthorNotFound)
	}

	r.invalidate(ctx, id)
	return deleted, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, CacheKey(id)); err != nil {
		log.Warn().Err(err).Str("author_id", id).Msg("author cache invalidation failed")
	}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Country,
		&a.Email,
		&a.ProfileImage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAuthors(rows pgx.Rows) ([]model.Author, error) {
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}
