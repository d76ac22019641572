package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/rs/zerolog/log"

	"library-api/internal/infrastructure/storage"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	store       storage.FileStore
}

func newHealthChecker(cfg *Config, store storage.FileStore) *HealthChecker {
	return &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.App.Redis.Password,
			DB:       cfg.App.Redis.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
		store: store,
	}
}

// startServices runs the health checks and starts the probe server.
func startServices(cfg *Config, checker *HealthChecker) error {
	log.Info().Msg("Library worker starting")

	if err := checker.checkAll(context.Background()); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.HealthPort, checker)
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.checkRedis},
		{"Object Storage", h.checkStorage},
	}

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check OK")
	}

	return nil
}

func (h *HealthChecker) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkStorage(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return h.store.Ping(ctx)
}

func (h *HealthChecker) Close() error {
	return h.redisClient.Close()
}

func healthRouter(checker *HealthChecker) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "library-worker"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := checker.checkAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return r
}

// startHealthCheckServer serves liveness and readiness probes.
func startHealthCheckServer(port string, checker *HealthChecker) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           healthRouter(checker),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("[Health] Starting health check server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
