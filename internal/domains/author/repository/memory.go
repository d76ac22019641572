package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-api/internal/domains/author/model"
	"library-api/internal/shared/apperr"
	"library-api/internal/shared/pagination"
)

// MemoryRepository is an in-process RepositoryInterface used by service and
// handler tests. It enforces the unique email index like the real table.
type MemoryRepository struct {
	mu      sync.Mutex
	authors map[string]model.Author
	clock   time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		authors: map[string]model.Author{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick keeps created_at strictly increasing so ordering is deterministic.
func (m *MemoryRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemoryRepository) emailTaken(email, exceptID string) bool {
	for id, a := range m.authors {
		if id != exceptID && a.Email == email {
			return true
		}
	}
	return false
}

func duplicateEmail(email string) error {
	return &apperr.DuplicateKeyError{
		Message: `duplicate key value violates unique constraint "authors_email_key": email ` + email,
	}
}

func public(a model.Author) *model.Author {
	a.PasswordHash = ""
	return &a
}

func (m *MemoryRepository) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(a.Email, "") {
		return nil, duplicateEmail(a.Email)
	}
	stored := *a
	stored.ID = uuid.NewString()
	stored.CreatedAt = m.tick()
	stored.UpdatedAt = stored.CreatedAt
	m.authors[stored.ID] = stored
	return public(stored), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id string) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.authors[strings.ToLower(id)]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return public(a), nil
}

func (m *MemoryRepository) FindByEmailWithSecret(_ context.Context, email string) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.authors {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

// StoredHash exposes the persisted hash to tests.
func (m *MemoryRepository) StoredHash(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authors[id].PasswordHash
}

func (m *MemoryRepository) sorted() []model.Author {
	out := make([]model.Author, 0, len(m.authors))
	for _, a := range m.authors {
		out = append(out, *public(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryRepository) List(_ context.Context, p pagination.Params) ([]model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted()
	start := p.Offset()
	if start >= len(all) {
		return []model.Author{}, nil
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *MemoryRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.authors)), nil
}

func (m *MemoryRepository) SearchByName(_ context.Context, prefix string) ([]model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Author{}
	for _, a := range m.sorted() {
		if strings.HasPrefix(strings.ToLower(a.Name), strings.ToLower(prefix)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Update(_ context.Context, a *model.Author, passwordHash *string) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.authors[a.ID]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	if m.emailTaken(a.Email, a.ID) {
		return nil, duplicateEmail(a.Email)
	}
	stored.Name = a.Name
	stored.Country = a.Country
	stored.Email = a.Email
	if passwordHash != nil {
		stored.PasswordHash = *passwordHash
	}
	stored.UpdatedAt = m.tick()
	m.authors[a.ID] = stored
	return public(stored), nil
}

func (m *MemoryRepository) UpdateProfileImage(_ context.Context, id, path string) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	stored.ProfileImage = &path
	stored.UpdatedAt = m.tick()
	m.authors[id] = stored
	return public(stored), nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	delete(m.authors, id)
	return public(stored), nil
}

func (m *MemoryRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.authors[id]
	return ok, nil
}

var _ RepositoryInterface = (*MemoryRepository)(nil)
