package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
	"library-api/internal/shared/pagination"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors AuthorChecker
}

func NewBookService(repo repository.RepositoryInterface, authors AuthorChecker) ServiceInterface {
	return &bookService{
		repo:    repo,
		authors: authors,
	}
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	draft := model.NewDraft(req)
	if err := s.validate(ctx, draft); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	log.Info().Str("book_id", b.ID).Msg("Book created")
	return b, nil
}

func (s *bookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	if !validID(id) {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, p pagination.Params) (pagination.Page[model.Book], error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return pagination.Page[model.Book]{}, err
	}

	books, err := s.repo.List(ctx, p)
	if err != nil {
		return pagination.Page[model.Book]{}, err
	}
	return pagination.NewPage(books, total, p), nil
}

func (s *bookService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *bookService) SearchByTitle(ctx context.Context, prefix string) ([]model.Book, error) {
	books, err := s.repo.SearchByTitle(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// Update merges req into the stored book and validates the result. A missing id
// is ErrBookNotFound; nothing is created.
func (s *bookService) Update(ctx context.Context, id string, req *model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := model.MergeDraft(current, req)
	if err := s.validate(ctx, draft); err != nil {
		return nil, err
	}

	b, err := s.repo.Update(ctx, current.ID, draft)
	if err != nil {
		return nil, err
	}

	log.Info().Str("book_id", b.ID).Msg("Book updated")
	return b, nil
}

func (s *bookService) Delete(ctx context.Context, id string) (*model.Book, error) {
	if !validID(id) {
		return nil, model.ErrBookNotFound
	}

	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("book_id", b.ID).Msg("Book deleted")
	return b, nil
}

// validate runs the field rules, then checks that the referenced author exists.
func (s *bookService) validate(ctx context.Context, d model.Draft) error {
	if err := model.ValidateBook(d); err != nil {
		return err
	}
	if d.AuthorID == nil || s.authors == nil {
		return nil
	}

	exists, err := s.authors.ExistsByID(ctx, *d.AuthorID)
	if err != nil {
		return err
	}
	if !exists {
		return model.AuthorNotFoundViolation()
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
