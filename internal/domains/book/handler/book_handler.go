package handler

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared/pagination"
	"library-api/internal/shared/response"
)

// Handler serves /book. Mutations are public.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// ListBooks - GET /book?page=&limit=
func (h *Handler) ListBooks(c *gin.Context) {
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

// GetBookByID - GET /book/:id
func (h *Handler) GetBookByID(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, b)
}

// SearchByTitle - GET /book/title/:title
func (h *Handler) SearchByTitle(c *gin.Context) {
	books, err := h.service.SearchByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, books)
}

// CreateBook - POST /book
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, b)
}

// UpdateBook - PUT /book/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, b)
}

// DeleteBook - DELETE /book/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	b, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, b)
}
