package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperr"
	"library-api/internal/shared/authz"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	HandleError(c, err)
	return w
}

func TestHandleError(t *testing.T) {
	notFound := fmt.Errorf("author %w", apperr.ErrNotFound)
	validation := &apperr.ValidationError{Entity: "Author", Fields: map[string]string{"name": "cannot be blank"}}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("create: %w", validation),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"name":"ValidationError","message":"Author validation failed: name: cannot be blank","errors":{"name":"cannot be blank"}}`,
		},
		{
			name:       "duplicate key",
			err:        &apperr.DuplicateKeyError{Message: `duplicate key value violates unique constraint "authors_email_key"`},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"duplicate key value violates unique constraint \"authors_email_key\""}`,
		},
		{
			name:       "wrapped duplicate key reports the store message",
			err:        fmt.Errorf("failed to create author: %w", &apperr.DuplicateKeyError{Message: "duplicate key value"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"duplicate key value"}`,
		},
		{
			name:       "untyped duplicate key",
			err:        errors.New("E11000 duplicate key error collection"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"E11000 duplicate key error collection"}`,
		},
		{
			name:       "not found",
			err:        notFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{}`,
		},
		{
			name:       "anything else",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := run(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

// validation must win over the duplicate-key substring match.
func TestHandleError_ValidationBeforeDuplicate(t *testing.T) {
	err := &apperr.ValidationError{Entity: "Author", Fields: map[string]string{"email": "duplicate key in input"}}
	w := run(err)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ValidationError", body["name"])
}

func TestUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Unauthorized(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, authz.DeniedMessage), w.Body.String())
	assert.True(t, c.IsAborted())
}
