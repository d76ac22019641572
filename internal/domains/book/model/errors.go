package model

import (
	"fmt"

	"library-api/internal/shared/apperr"
)

var ErrBookNotFound = fmt.Errorf("book %w", apperr.ErrNotFound)

// AuthorNotFoundViolation reports a reference to an unknown author.
func AuthorNotFoundViolation() error {
	return &apperr.ValidationError{
		Entity: entityName,
		Fields: map[string]string{"author": "author does not exist"},
	}
}
