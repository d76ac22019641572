package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/repository"
	"library-api/internal/infrastructure/storage"
	"library-api/internal/shared/apperr"
	"library-api/internal/shared/pagination"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 10

type authorService struct {
	repo   repository.RepositoryInterface
	tokens TokenIssuer
	store  storage.FileStore
	images *storage.ImageProcessor
	jobs   ImageJobs
	now    func() time.Time

	adminEmail string
}

// Option customizes the author service.
type Option func(*authorService)

// WithAdminEmail reserves the admin address: no existing account may be
// updated onto it.
func WithAdminEmail(email string) Option {
	return func(s *authorService) {
		s.adminEmail = strings.ToLower(strings.TrimSpace(email))
	}
}

func NewAuthorService(
	repo repository.RepositoryInterface,
	tokens TokenIssuer,
	store storage.FileStore,
	images *storage.ImageProcessor,
	jobs ImageJobs,
	opts ...Option,
) ServiceInterface {
	if images == nil {
		images = storage.NewImageProcessor(0)
	}
	s := &authorService{
		repo:   repo,
		tokens: tokens,
		store:  store,
		images: images,
		jobs:   jobs,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	draft := model.NewDraft(req)
	if err := model.ValidateAuthor(draft); err != nil {
		return nil, err
	}

	hash, err := hashPassword(draft.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Author{
		Name:         draft.Name,
		Country:      draft.Country,
		Email:        draft.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", created.ID).Msg("Author created")
	return created, nil
}

func (s *authorService) claimsAdminEmail(current, next string) bool {
	return s.adminEmail != "" &&
		strings.EqualFold(next, s.adminEmail) &&
		!strings.EqualFold(current, s.adminEmail)
}

// GetByID treats a malformed id like an unknown one.
func (s *authorService) GetByID(ctx context.Context, id string) (*model.Author, error) {
	if !validID(id) {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, p pagination.Params) (pagination.Page[model.Author], error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return pagination.Page[model.Author]{}, err
	}

	authors, err := s.repo.List(ctx, p)
	if err != nil {
		return pagination.Page[model.Author]{}, err
	}
	return pagination.NewPage(authors, total, p), nil
}

func (s *authorService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *authorService) SearchByName(ctx context.Context, prefix string) ([]model.Author, error) {
	authors, err := s.repo.SearchByName(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []model.Author{}
	}
	return authors, nil
}

// Update never creates: a missing id is ErrAuthorNotFound. The stored hash is
// only replaced when req carries a password.
func (s *authorService) Update(ctx context.Context, id string, req *model.UpdateAuthorRequest) (*model.Author, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := model.MergeDraft(current, req)
	if err := model.ValidateAuthor(draft); err != nil {
		return nil, err
	}
	if s.claimsAdminEmail(current.Email, draft.Email) {
		return nil, &apperr.ValidationError{Entity: "Author", Fields: map[string]string{"email": "is reserved"}}
	}

	var newHash *string
	if draft.PasswordSet {
		hash, err := hashPassword(draft.Password)
		if err != nil {
			return nil, err
		}
		newHash = &hash
	}

	updated, err := s.repo.Update(ctx, &model.Author{
		ID:      current.ID,
		Name:    draft.Name,
		Country: draft.Country,
		Email:   draft.Email,
	}, newHash)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", updated.ID).
		Bool("password_changed", newHash != nil).
		Msg("Author updated")
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id string) (*model.Author, error) {
	if !validID(id) {
		return nil, model.ErrAuthorNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if deleted.ProfileImage != nil && s.jobs != nil {
		if err := s.jobs.DeleteAuthorImages(ctx, deleted.ID); err != nil {
			log.Warn().Err(err).Str("author_id", deleted.ID).Msg("failed to schedule image cleanup")
		}
	}

	log.Info().Str("author_id", deleted.ID).Msg("Author deleted")
	return deleted, nil
}

func (s *authorService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := model.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, model.ErrMissingCredentials
	}

	a, err := s.FindByEmailWithSecret(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(password, a.PasswordHash) {
		log.Info().Str("author_id", a.ID).Msg("Login rejected: wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.LoginResponse{Token: token}, nil
}

func (s *authorService) FindByEmailWithSecret(ctx context.Context, email string) (*model.Author, error) {
	return s.repo.FindByEmailWithSecret(ctx, model.NormalizeEmail(email))
}

func (s *authorService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// UploadProfileImage normalizes and stores the image, then records its URL.
// The previous image, if any, is deleted by the worker.
func (s *authorService) UploadProfileImage(ctx context.Context, authorID, filename string, data []byte) (*model.Author, error) {
	if s.store == nil {
		return nil, errors.New("image storage is not configured")
	}

	current, err := s.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.images.ValidateImage(data); err != nil {
		return nil, &apperr.ValidationError{Entity: "Author", Fields: map[string]string{"logo": err.Error()}}
	}
	normalized, err := s.images.NormalizeProfile(data)
	if err != nil {
		return nil, &apperr.ValidationError{Entity: "Author", Fields: map[string]string{"logo": err.Error()}}
	}

	key := storage.ProfileImageKey(current.ID, filename, s.now())
	url, err := s.store.Upload(ctx, key, normalized, "image/jpeg")
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProfileImage(ctx, current.ID, url)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	if current.ProfileImage != nil && *current.ProfileImage != url {
		s.schedulePreviousImageDeletion(ctx, *current.ProfileImage)
	}

	log.Info().Str("author_id", updated.ID).Str("key", key).Msg("Profile image uploaded")
	return updated, nil
}

func (s *authorService) schedulePreviousImageDeletion(ctx context.Context, previousURL string) {
	key, ok := s.store.KeyFromURL(previousURL)
	if !ok || s.jobs == nil {
		return
	}
	if err := s.jobs.DeleteImage(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to schedule image deletion")
	}
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
