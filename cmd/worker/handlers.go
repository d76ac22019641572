package main

import (
	"github.com/hibiken/asynq"

	authorJob "library-api/internal/domains/author/job"
	"library-api/internal/infrastructure/storage"
	"library-api/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deleteImage        *authorJob.DeleteImageHandler
	deleteAuthorImages *authorJob.DeleteAuthorImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(store storage.FileStore) *HandlerRegistry {
	return &HandlerRegistry{
		deleteImage:        authorJob.NewDeleteImageHandler(store),
		deleteAuthorImages: authorJob.NewDeleteAuthorImagesHandler(store),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Profile image cleanup
	mux.HandleFunc(shared.TypeDeleteAuthorImage, h.deleteImage.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteAuthorImages, h.deleteAuthorImages.ProcessTask)
}
