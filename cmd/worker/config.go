package main

import (
	"github.com/rs/zerolog/log"

	"library-api/internal/config"
)

// Config holds the worker settings on top of the shared application config.
type Config struct {
	App        *config.Config
	RedisAddr  string
	HealthPort string
}

// loadConfig loads configuration from environment variables
func loadConfig() (*Config, error) {
	app, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App:        app,
		RedisAddr:  app.Redis.Host,
		HealthPort: getEnv("WORKER_HEALTH_PORT", "9999"),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Str("storage", app.Storage.Driver).
		Msg("[Config] Worker configuration loaded")

	return cfg, nil
}
