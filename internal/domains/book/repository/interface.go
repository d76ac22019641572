package repository

import (
	"context"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/pagination"
)

// RepositoryInterface stores books. Every read populates Author.
type RepositoryInterface interface {
	Create(ctx context.Context, d model.Draft) (*model.Book, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, p pagination.Params) ([]model.Book, error)
	Count(ctx context.Context) (int64, error)
	SearchByTitle(ctx context.Context, prefix string) ([]model.Book, error)
	Update(ctx context.Context, id string, d model.Draft) (*model.Book, error)
	// Delete returns the removed record, author populated.
	Delete(ctx context.Context, id string) (*model.Book, error)
}
