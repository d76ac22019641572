package service

import (
	"context"

	"library-api/internal/domains/author/model"
	"library-api/internal/shared/pagination"
)

// ServiceInterface is the author business layer used by the HTTP handler.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id string) (*model.Author, error)
	List(ctx context.Context, p pagination.Params) (pagination.Page[model.Author], error)
	Count(ctx context.Context) (int64, error)
	// SearchByName never fails with NotFound; no match is an empty slice.
	SearchByName(ctx context.Context, prefix string) ([]model.Author, error)
	// Update merges req into the stored record and re-runs validation.
	Update(ctx context.Context, id string, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id string) (*model.Author, error)

	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*model.Author, error)
	VerifyPassword(plain, hash string) bool

	UploadProfileImage(ctx context.Context, authorID, filename string, data []byte) (*model.Author, error)
}

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	Issue(subjectID, subjectEmail string) (string, error)
}

// ImageJobs schedules deletion of stored images off the request path.
type ImageJobs interface {
	DeleteImage(ctx context.Context, key string) error
	DeleteAuthorImages(ctx context.Context, authorID string) error
}
