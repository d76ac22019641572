// Package queue enqueues background work on asynq.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskQueue schedules image cleanup on the worker.
type TaskQueue struct {
	client Enqueuer
}

func NewTaskQueue(client Enqueuer) *TaskQueue {
	return &TaskQueue{client: client}
}

// NewClient builds the asynq client from the shared Redis settings.
func NewClient(addr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// DeleteImage removes one stored object asynchronously.
func (q *TaskQueue) DeleteImage(ctx context.Context, key string) error {
	return q.enqueue(ctx, shared.TypeDeleteAuthorImage, shared.DeleteImagePayload{Key: key},
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
}

// DeleteAuthorImages removes every object stored for authorID asynchronously.
func (q *TaskQueue) DeleteAuthorImages(ctx context.Context, authorID string) error {
	return q.enqueue(ctx, shared.TypeDeleteAuthorImages, shared.DeleteAuthorImagesPayload{AuthorID: authorID},
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	)
}

func (q *TaskQueue) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("type", taskType).
		Str("queue", info.Queue).
		Msg("Task enqueued")
	return nil
}
