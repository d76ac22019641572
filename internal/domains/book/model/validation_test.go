package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperr"
)

func ptr[T any](v T) *T { return &v }

func validDraft() Draft {
	return NewDraft(&CreateBookRequest{
		Title:  "  Cien años de soledad ",
		Author: ptr("7F1C0E3A-6A5E-4A43-9A1F-3C1A0F0B9C11"),
		Pages:  ptr(471),
		Publisher: &PublisherInput{
			Name:    ptr("Sudamericana"),
			Country: ptr(" spain"),
		},
	})
}

func TestNewDraft_Normalizes(t *testing.T) {
	d := validDraft()
	assert.Equal(t, "Cien años de soledad", d.Title)
	assert.Equal(t, "7f1c0e3a-6a5e-4a43-9a1f-3c1a0f0b9c11", *d.AuthorID)
	assert.Equal(t, "SPAIN", d.Publisher.Country)

	d = NewDraft(&CreateBookRequest{Title: "abc", Author: ptr("  ")})
	assert.Nil(t, d.AuthorID)
}

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(d *Draft)
		wantFields []string
	}{
		{"valid", func(d *Draft) {}, nil},
		{"only title", func(d *Draft) { *d = Draft{Title: "Dune"} }, nil},
		{"title too short", func(d *Draft) { d.Title = "ab" }, []string{"title"}},
		{"title too long", func(d *Draft) { d.Title = strings.Repeat("x", 51) }, []string{"title"}},
		{"zero pages", func(d *Draft) { d.Pages = ptr(0) }, []string{"pages"}},
		{"too many pages", func(d *Draft) { d.Pages = ptr(10001) }, []string{"pages"}},
		{"boundary pages", func(d *Draft) { d.Pages = ptr(10000) }, nil},
		{"bad author id", func(d *Draft) { d.AuthorID = ptr("abc") }, []string{"author"}},
		{"publisher country", func(d *Draft) { d.Publisher.Country = "ENGLAND" }, []string{"publisher.country"}},
		{"publisher without name", func(d *Draft) { d.Publisher.Name = "" }, []string{"publisher.name"}},
		{"several", func(d *Draft) { d.Title = ""; d.Pages = ptr(-3) }, []string{"title", "pages"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := ValidateBook(d)

			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, "Book", ve.Entity)
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
		})
	}
}

func TestMergeDraft(t *testing.T) {
	current := &Book{
		Title:     "Rayuela",
		AuthorID:  ptr("7f1c0e3a-6a5e-4a43-9a1f-3c1a0f0b9c11"),
		Pages:     ptr(600),
		Publisher: &Publisher{Name: "Sudamericana", Country: "SPAIN"},
	}

	d := MergeDraft(current, &UpdateBookRequest{Publisher: Set(PublisherInput{Country: ptr("italy")})})
	assert.Equal(t, "Rayuela", d.Title)
	assert.Equal(t, 600, *d.Pages)
	assert.Equal(t, Publisher{Name: "Sudamericana", Country: "ITALY"}, *d.Publisher)
	assert.Equal(t, "SPAIN", current.Publisher.Country, "stored record untouched")

	d = MergeDraft(current, &UpdateBookRequest{Author: ptr("")})
	assert.Nil(t, d.AuthorID)

	d = MergeDraft(current, &UpdateBookRequest{Pages: Null[int](), Publisher: Null[PublisherInput]()})
	assert.Nil(t, d.Pages)
	assert.Nil(t, d.Publisher)
	assert.Equal(t, 600, *current.Pages)
}

func TestUpdateBookRequest_Nulls(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"pages":null,"publisher":null}`), &req))
	assert.True(t, req.Pages.Set)
	assert.Nil(t, req.Pages.Value)
	assert.True(t, req.Publisher.Set)
	assert.Nil(t, req.Publisher.Value)

	req = UpdateBookRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Rayuela","pages":12}`), &req))
	assert.Equal(t, 12, *req.Pages.Value)
	assert.False(t, req.Publisher.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"pages":"many"}`), &req))
}
