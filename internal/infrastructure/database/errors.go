package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-api/internal/shared/apperr"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TranslateError maps pgx errors onto the shared taxonomy: no rows becomes
// notFound, unique violations become *apperr.DuplicateKeyError. Anything else
// is returned unchanged.
func TranslateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &apperr.DuplicateKeyError{Message: pgErr.Error()}
	}
	return err
}

// IsForeignKeyViolation reports a broken reference, e.g. a book pointing at a
// deleted author.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern returns a LIKE pattern matching values starting with prefix literally.
// Callers compare lower(column) LIKE lower($1) so the lower() indexes apply.
func PrefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
