package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared"
)

// asynqServer wraps asynq.Server with logging around its lifecycle.
type asynqServer struct {
	*asynq.Server
}

func newServeMux(handlers *HandlerRegistry) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)
	return mux
}

// setupAsynqServer creates the Asynq server and starts it in the background.
func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := newServeMux(handlers)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.App.Redis.Password,
			DB:       cfg.App.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault: 10,
				shared.QueueLow:     5,
			},
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[Asynq] Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks, bounded by asynq's ShutdownTimeout.
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Stopped")
}
