package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/infrastructure/storage"
	"library-api/internal/shared"
)

func TestDeleteImageHandler(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	_, err = store.Upload(ctx, "authors/a1/1_me.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)

	h := NewDeleteImageHandler(store)
	require.NoError(t, h.ProcessTask(ctx, asynq.NewTask(shared.TypeDeleteAuthorImage, []byte(`{"key":"authors/a1/1_me.jpg"}`))))

	_, err = os.Stat(filepath.Join(root, "authors", "a1", "1_me.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteImageHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewDeleteImageHandler(nil)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteAuthorImage, []byte(`not json`)))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteAuthorImage, []byte(`{"key":""}`)))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestDeleteAuthorImagesHandler(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	for _, k := range []string{"authors/a1/1_me.jpg", "authors/a1/2_me.jpg", "authors/a2/1_me.jpg"} {
		_, err = store.Upload(ctx, k, []byte("x"), "image/jpeg")
		require.NoError(t, err)
	}

	h := NewDeleteAuthorImagesHandler(store)
	require.NoError(t, h.ProcessTask(ctx, asynq.NewTask(shared.TypeDeleteAuthorImages, []byte(`{"authorId":"a1"}`))))

	_, err = os.Stat(filepath.Join(root, "authors", "a1"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "authors", "a2", "1_me.jpg"))
	assert.NoError(t, err)
}
