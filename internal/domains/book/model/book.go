package model

import (
	"strings"
	"time"

	authormodel "library-api/internal/domains/author/model"
)

const (
	MinTitleLength         = 3
	MaxTitleLength         = 50
	MinPages               = 1
	MaxPages               = 10000
	MinPublisherNameLength = 3
	MaxPublisherNameLength = 25
)

// PublisherCountries are the countries a publisher may be based in.
var PublisherCountries = []string{"SPAIN", "ITALY", "USA", "GERMANY", "JAPAN", "FRANCE"}

type Publisher struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Book is a catalog entry. Author is populated on reads and omitted when the
// book has no author.
type Book struct {
	ID        string              `json:"_id"`
	Title     string              `json:"title"`
	AuthorID  *string             `json:"-"`
	Author    *authormodel.Author `json:"author,omitempty"`
	Pages     *int                `json:"pages,omitempty"`
	Publisher *Publisher          `json:"publisher,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type PublisherInput struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

// CreateBookRequest is the POST /book body. Author is an author id.
type CreateBookRequest struct {
	Title     string          `json:"title"`
	Author    *string         `json:"author"`
	Pages     *int            `json:"pages"`
	Publisher *PublisherInput `json:"publisher"`
}

// UpdateBookRequest is the PUT /book/:id body. Absent fields keep their stored
// value; publisher fields are merged one by one. An explicit null clears pages
// or publisher, an empty author clears the author.
type UpdateBookRequest struct {
	Title     *string                  `json:"title"`
	Author    *string                  `json:"author"`
	Pages     Nullable[int]            `json:"pages"`
	Publisher Nullable[PublisherInput] `json:"publisher"`
}

// Draft is the normalized record validated on create and update.
type Draft struct {
	Title     string
	AuthorID  *string
	Pages     *int
	Publisher *Publisher
}

func NormalizeTitle(s string) string { return strings.TrimSpace(s) }

func normalizeAuthorID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*id))
	if v == "" {
		return nil
	}
	return &v
}

func mergePublisher(current *Publisher, in *PublisherInput) *Publisher {
	if in == nil {
		return current
	}
	p := Publisher{}
	if current != nil {
		p = *current
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Country != nil {
		p.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	return &p
}

func NewDraft(req *CreateBookRequest) Draft {
	return Draft{
		Title:     NormalizeTitle(req.Title),
		AuthorID:  normalizeAuthorID(req.Author),
		Pages:     req.Pages,
		Publisher: mergePublisher(nil, req.Publisher),
	}
}

// MergeDraft overlays the fields present in req on the stored book.
func MergeDraft(current *Book, req *UpdateBookRequest) Draft {
	d := Draft{
		Title:     current.Title,
		AuthorID:  current.AuthorID,
		Pages:     current.Pages,
		Publisher: current.Publisher,
	}
	if req.Title != nil {
		d.Title = NormalizeTitle(*req.Title)
	}
	if req.Author != nil {
		d.AuthorID = normalizeAuthorID(req.Author)
	}
	if req.Pages.Set {
		d.Pages = req.Pages.Value
	}
	if req.Publisher.Set {
		if req.Publisher.Value == nil {
			d.Publisher = nil
		} else {
			d.Publisher = mergePublisher(current.Publisher, req.Publisher.Value)
		}
	}
	return d
}
