package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared"
)

type recordingClient struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Queue: shared.QueueLow, Type: task.Type()}, nil
}

func TestTaskQueue_DeleteImage(t *testing.T) {
	rc := &recordingClient{}
	q := NewTaskQueue(rc)

	require.NoError(t, q.DeleteImage(context.Background(), "authors/a/1_me.jpg"))
	require.Len(t, rc.tasks, 1)
	assert.Equal(t, shared.TypeDeleteAuthorImage, rc.tasks[0].Type())

	var p shared.DeleteImagePayload
	require.NoError(t, json.Unmarshal(rc.tasks[0].Payload(), &p))
	assert.Equal(t, "authors/a/1_me.jpg", p.Key)
}

func TestTaskQueue_DeleteAuthorImages(t *testing.T) {
	rc := &recordingClient{}
	q := NewTaskQueue(rc)

	require.NoError(t, q.DeleteAuthorImages(context.Background(), "a1"))
	require.Len(t, rc.tasks, 1)
	assert.Equal(t, shared.TypeDeleteAuthorImages, rc.tasks[0].Type())
	assert.JSONEq(t, `{"authorId":"a1"}`, string(rc.tasks[0].Payload()))
}

func TestTaskQueue_EnqueueError(t *testing.T) {
	q := NewTaskQueue(&recordingClient{err: errors.New("redis down")})
	err := q.DeleteImage(context.Background(), "k")
	assert.ErrorContains(t, err, "redis down")
}
