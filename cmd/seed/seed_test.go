package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
	"library-api/internal/shared/pagination"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	authorsRepo := authorRepo.NewMemoryRepository()
	authors := authorService.NewAuthorService(authorsRepo, nil, nil, nil, nil)
	books := bookService.NewBookService(bookRepo.NewMemoryRepository(authorsRepo), authorsRepo)

	require.NoError(t, seed(ctx, authors, books))

	n, err := authors.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(authorList), n)

	page, err := books.List(ctx, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, len(bookList), page.TotalItems)
	assert.Equal(t, "Don Quijote de la Mancha", page.Data[0].Title)

	a, err := authors.FindByEmailWithSecret(ctx, "miguel.cervantes@gmail.com")
	require.NoError(t, err)
	assert.True(t, authors.VerifyPassword("DonQuijote123", a.PasswordHash))
}

func TestSeed_StopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	authorsRepo := authorRepo.NewMemoryRepository()
	authors := authorService.NewAuthorService(authorsRepo, nil, nil, nil, nil)
	books := bookService.NewBookService(bookRepo.NewMemoryRepository(authorsRepo), authorsRepo)

	require.NoError(t, seed(ctx, authors, books))

	// Second run hits the unique email on the first author; nothing is rolled back.
	err := seed(ctx, authors, books)
	require.Error(t, err)

	n, err := authors.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(authorList), n)
}
