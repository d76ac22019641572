package model

import (
	"errors"
	"fmt"

	"library-api/internal/shared/apperr"
)

var (
	ErrAuthorNotFound     = fmt.Errorf("author %w", apperr.ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)
