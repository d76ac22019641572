package repository

import (
	"context"

	"library-api/internal/domains/author/model"
	"library-api/internal/shared/pagination"
)

// RepositoryInterface is the author credential store.
// Only FindByEmailWithSecret returns the password hash.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id string) (*model.Author, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*model.Author, error)
	List(ctx context.Context, p pagination.Params) ([]model.Author, error)
	Count(ctx context.Context) (int64, error)
	SearchByName(ctx context.Context, prefix string) ([]model.Author, error)
	// Update writes name, country and email. passwordHash nil keeps the stored hash.
	Update(ctx context.Context, a *model.Author, passwordHash *string) (*model.Author, error)
	UpdateProfileImage(ctx context.Context, id, path string) (*model.Author, error)
	// Delete returns the removed record.
	Delete(ctx context.Context, id string) (*model.Author, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}
