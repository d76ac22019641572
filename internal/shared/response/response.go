package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/apperr"
	"library-api/internal/shared/authz"
)

// ValidationBody is the 400 body for entity validation failures.
type ValidationBody struct {
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// ErrorBody is the generic {"error": "..."} body.
type ErrorBody struct {
	Error string `json:"error"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized always carries the fixed denial message.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Error: authz.DeniedMessage})
}

// NotFound answers a singular lookup miss with an empty object.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{})
}

// HandleError routes an error to its response. Priority:
// validation -> duplicate key -> not found -> 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var ve *apperr.ValidationError
	var dk *apperr.DuplicateKeyError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ValidationBody{
			Name:    "ValidationError",
			Message: ve.Error(),
			Errors:  ve.Fields,
		})
	case errors.As(err, &dk):
		BadRequest(c, dk.Message)
	case apperr.IsDuplicateKey(err):
		BadRequest(c, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(c)
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		Error(c, http.StatusInternalServerError, err.Error())
	}
}
