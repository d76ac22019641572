package model

import (
	"strings"
	"time"
)

const (
	MinNameLength     = 3
	MaxNameLength     = 25
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// Countries an author may be registered in.
var Countries = []string{
	"SPAIN", "ITALY", "USA", "GERMANY", "JAPAN", "FRANCE",
	"ENGLAND", "COLOMBIA", "RUSSIA", "ARGENTINA", "CZECHOSLOVAKIA", "NIGERIA",
}

// Author is both a catalog entry and a login principal.
// PasswordHash is never serialized.
type Author struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Country      string    `json:"country" db:"country"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateAuthorRequest is the POST /author body.
type CreateAuthorRequest struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAuthorRequest is the PUT /author/:id body. Nil fields keep their stored value.
type UpdateAuthorRequest struct {
	Name     *string `json:"name"`
	Country  *string `json:"country"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Draft is the normalized, not yet hashed form validated on create and update.
type Draft struct {
	Name     string
	Country  string
	Email    string
	Password string
	// PasswordSet is false when an update keeps the stored hash.
	PasswordSet bool
}

func NormalizeName(s string) string    { return strings.TrimSpace(s) }
func NormalizeCountry(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
func NormalizeEmail(s string) string   { return strings.ToLower(strings.TrimSpace(s)) }

// NewDraft normalizes a create request.
func NewDraft(req *CreateAuthorRequest) Draft {
	return Draft{
		Name:        NormalizeName(req.Name),
		Country:     NormalizeCountry(req.Country),
		Email:       NormalizeEmail(req.Email),
		Password:    strings.TrimSpace(req.Password),
		PasswordSet: true,
	}
}

// MergeDraft overlays the non-nil fields of req on the stored author.
func MergeDraft(current *Author, req *UpdateAuthorRequest) Draft {
	d := Draft{
		Name:    current.Name,
		Country: current.Country,
		Email:   current.Email,
	}
	if req.Name != nil {
		d.Name = NormalizeName(*req.Name)
	}
	if req.Country != nil {
		d.Country = NormalizeCountry(*req.Country)
	}
	if req.Email != nil {
		d.Email = NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		d.Password = strings.TrimSpace(*req.Password)
		d.PasswordSet = true
	}
	return d
}
