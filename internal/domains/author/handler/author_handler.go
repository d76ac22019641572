package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/service"
	"library-api/internal/shared/apperr"
	"library-api/internal/shared/pagination"
	"library-api/internal/shared/response"
)

const (
	imageFormField    = "logo"
	authorIDFormField = "authorId"
)

type AuthorHandler struct {
	service        service.ServiceInterface
	maxUploadBytes int64
}

func NewAuthorHandler(svc service.ServiceInterface, maxUploadBytes int64) *AuthorHandler {
	return &AuthorHandler{
		service:        svc,
		maxUploadBytes: maxUploadBytes,
	}
}

// List - GET /author?page=&limit=
func (h *AuthorHandler) List(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, page)
}

// GetByID - GET /author/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	a, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, a)
}

// SearchByName - GET /author/name/:name
func (h *AuthorHandler) SearchByName(c *gin.Context) {
	authors, err := h.service.SearchByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, authors)
}

// Create - POST /author
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, a)
}

// Update - PUT /author/:id (owner or admin)
func (h *AuthorHandler) Update(c *gin.Context) {
	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, a)
}

// Delete - DELETE /author/:id (owner or admin)
func (h *AuthorHandler) Delete(c *gin.Context) {
	a, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, a)
}

// Login - POST /author/login
func (h *AuthorHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrMissingCredentials.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case err != nil:
		response.HandleError(c, err)
	default:
		response.OK(c, resp)
	}
}

// UploadImage - POST /author/image-upload (multipart: logo, authorId)
func (h *AuthorHandler) UploadImage(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		msg := "an image file is required"
		if bodyTooLarge(err) {
			msg = fmt.Sprintf("image must not exceed %d bytes", h.maxUploadBytes)
		}
		response.HandleError(c, &apperr.ValidationError{
			Entity: "Author",
			Fields: map[string]string{imageFormField: msg},
		})
		return
	}
	authorID := c.PostForm(authorIDFormField)

	file, err := fileHeader.Open()
	if err != nil {
		response.HandleError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.HandleError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	a, err := h.service.UploadProfileImage(c.Request.Context(), authorID, fileHeader.Filename, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, a)
}

func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
