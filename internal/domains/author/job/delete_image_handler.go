package job

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-api/internal/infrastructure/storage"
	"library-api/internal/shared"
)

// DeleteImageHandler removes a replaced profile image.
type DeleteImageHandler struct {
	store storage.FileStore
}

func NewDeleteImageHandler(store storage.FileStore) *DeleteImageHandler {
	return &DeleteImageHandler{store: store}
}

func (h *DeleteImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteImage payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if strings.TrimSpace(payload.Key) == "" {
		return fmt.Errorf("empty object key: %w", asynq.SkipRetry)
	}

	if err := h.store.Delete(ctx, payload.Key); err != nil {
		log.Error().Err(err).Str("key", payload.Key).Msg("Failed to delete profile image")
		return fmt.Errorf("delete image: %w", err)
	}

	log.Info().Str("key", payload.Key).Msg("Profile image deleted")
	return nil
}

// DeleteAuthorImagesHandler removes everything stored for a deleted author.
type DeleteAuthorImagesHandler struct {
	store storage.FileStore
}

func NewDeleteAuthorImagesHandler(store storage.FileStore) *DeleteAuthorImagesHandler {
	return &DeleteAuthorImagesHandler{store: store}
}

func (h *DeleteAuthorImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteAuthorImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteAuthorImages payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if strings.TrimSpace(payload.AuthorID) == "" {
		return fmt.Errorf("empty author id: %w", asynq.SkipRetry)
	}

	if err := h.store.DeleteByPrefix(ctx, storage.AuthorPrefix(payload.AuthorID)); err != nil {
		log.Error().Err(err).Str("author_id", payload.AuthorID).Msg("Failed to delete author images")
		return fmt.Errorf("delete author images: %w", err)
	}

	log.Info().Str("author_id", payload.AuthorID).Msg("Author images deleted")
	return nil
}
