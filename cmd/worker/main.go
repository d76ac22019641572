package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-api/pkg/container"
	"library-api/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, _, err := container.NewFileStore(ctx, cfg.App)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("[Storage] Failed to initialize")
	}

	handlers := initializeHandlers(store)

	checker := newHealthChecker(cfg, store)
	defer checker.Close()

	if err := startServices(cfg, checker); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	srv := setupAsynqServer(cfg, handlers)

	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
