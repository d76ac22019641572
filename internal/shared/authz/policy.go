// Package authz decides whether an authenticated subject may mutate an identity record.
package authz

import (
	"errors"
	"strings"
)

// DeniedMessage is returned verbatim on every authorization failure.
const DeniedMessage = "not authorized to perform this operation"

var ErrNotAuthorized = errors.New(DeniedMessage)

// Subject is the caller identity carried by a verified token.
type Subject struct {
	ID    string
	Email string
}

// Policy implements owner-or-admin.
type Policy struct {
	adminEmail string
}

func NewPolicy(adminEmail string) Policy {
	return Policy{adminEmail: normalizeEmail(adminEmail)}
}

// IsAdmin reports whether the subject holds the reserved administrator address.
func (p Policy) IsAdmin(s *Subject) bool {
	if s == nil || p.adminEmail == "" {
		return false
	}
	return normalizeEmail(s.Email) == p.adminEmail
}

// CanMutate allows the owner of resourceID or the administrator. A nil subject
// (no or invalid token) is always denied.
func (p Policy) CanMutate(s *Subject, resourceID string) bool {
	if s == nil {
		return false
	}
	if s.ID != "" && strings.EqualFold(s.ID, strings.TrimSpace(resourceID)) {
		return true
	}
	return p.IsAdmin(s)
}

// Authorize is CanMutate returning ErrNotAuthorized on denial.
func (p Policy) Authorize(s *Subject, resourceID string) error {
	if !p.CanMutate(s, resourceID) {
		return ErrNotAuthorized
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
