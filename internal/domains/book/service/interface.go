package service

import (
	"context"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/pagination"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, p pagination.Params) (pagination.Page[model.Book], error)
	Count(ctx context.Context) (int64, error)
	// SearchByTitle returns an empty slice, not NotFound, when nothing matches.
	SearchByTitle(ctx context.Context, prefix string) ([]model.Book, error)
	Update(ctx context.Context, id string, req *model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id string) (*model.Book, error)
}

// AuthorChecker is satisfied by the author repository.
type AuthorChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}
