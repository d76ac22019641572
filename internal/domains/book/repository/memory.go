package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	authorrepo "library-api/internal/domains/author/repository"
	"library-api/internal/domains/book/model"
	"library-api/internal/shared/pagination"
)

// MemoryRepository is an in-process RepositoryInterface used by service and
// handler tests. Authors are populated from the given author repository.
type MemoryRepository struct {
	mu      sync.Mutex
	books   map[string]model.Book
	authors authorrepo.RepositoryInterface
	clock   time.Time
}

func NewMemoryRepository(authors authorrepo.RepositoryInterface) *MemoryRepository {
	return &MemoryRepository{
		books:   map[string]model.Book{},
		authors: authors,
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MemoryRepository) populate(ctx context.Context, b model.Book) model.Book {
	b.Author = nil
	if b.AuthorID == nil || m.authors == nil {
		return b
	}
	if a, err := m.authors.GetByID(ctx, *b.AuthorID); err == nil {
		b.Author = a
	}
	return b
}

func (m *MemoryRepository) Create(ctx context.Context, d model.Draft) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Second)
	b := model.Book{
		ID:        uuid.NewString(),
		Title:     d.Title,
		AuthorID:  d.AuthorID,
		Pages:     d.Pages,
		Publisher: d.Publisher,
		CreatedAt: m.clock,
		UpdatedAt: m.clock,
	}
	m.books[b.ID] = b
	out := m.populate(ctx, b)
	return &out, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	out := m.populate(ctx, b)
	return &out, nil
}

func (m *MemoryRepository) sorted(ctx context.Context) []model.Book {
	out := make([]model.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, m.populate(ctx, b))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryRepository) List(ctx context.Context, p pagination.Params) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted(ctx)
	start := p.Offset()
	if start >= len(all) {
		return []model.Book{}, nil
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
	return int64(len(m.books)), nil
}

func (m *MemoryRepository) SearchByTitle(ctx context.Context, prefix string) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Book{}
	for _, b := range m.sorted(ctx) {
		if strings.HasPrefix(strings.ToLower(b.Title), strings.ToLower(prefix)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, d model.Draft) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	m.clock = m.clock.Add(time.Second)
	b.Title = d.Title
	b.AuthorID = d.AuthorID
	b.Pages = d.Pages
	b.Publisher = d.Publisher
	b.UpdatedAt = m.clock
	m.books[id] = b
	out := m.populate(ctx, b)
	return &out, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	delete(m.books, id)
	out := m.populate(ctx, b)
	return &out, nil
}

var _ RepositoryInterface = (*MemoryRepository)(nil)
