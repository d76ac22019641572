package apperr

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation("Author", "", nil))

	err := FromValidation("Author", "", validation.Errors{
		"name":  errors.New("the length must be between 3 and 25"),
		"email": errors.New("must be a valid email address"),
		"ok":    nil,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Author", ve.Entity)
	assert.Equal(t, map[string]string{
		"name":  "the length must be between 3 and 25",
		"email": "must be a valid email address",
	}, ve.Fields)
	assert.Equal(t,
		"Author validation failed: email: must be a valid email address; name: the length must be between 3 and 25",
		ve.Error())
}

func TestFromValidation_Prefix(t *testing.T) {
	err := FromValidation("Book", "publisher.", validation.Errors{
		"country": errors.New("must be a valid value"),
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{"publisher.country": "must be a valid value"}, ve.Fields)
}

func TestFromValidation_Internal(t *testing.T) {
	internal := validation.NewInternalError(errors.New("boom"))
	assert.Equal(t, internal, FromValidation("Book", "", internal))
}

func TestMerge(t *testing.T) {
	a := &ValidationError{Entity: "Book", Fields: map[string]string{"title": "required"}}
	b := &ValidationError{Entity: "Book", Fields: map[string]string{"publisher.name": "too short"}}

	err := Merge("Book", a, nil, b)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)

	assert.NoError(t, Merge("Book", nil, nil))

	other := errors.New("db down")
	assert.Equal(t, other, Merge("Book", a, other))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(&DuplicateKeyError{Message: "x"}))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", &DuplicateKeyError{Message: "x"})))
	assert.True(t, IsDuplicateKey(errors.New(`duplicate key value violates unique constraint "authors_email_key"`)))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
	assert.False(t, IsDuplicateKey(nil))
}
