package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"library-api/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// It is populated once from environment variables and never mutated afterwards.
type Config struct {
	App      AppConfig
	Database database.DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	AutoMigrate bool
}

type CORSConfig struct {
	// AllowedOrigins lists browser origins; "*" or empty allows any.
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type AuthConfig struct {
	// AdminEmail may mutate any author record.
	AdminEmail string
}

type StorageConfig struct {
	Driver   string // local, minio
	LocalDir string
	// MaxUploadBytes bounds multipart uploads.
	MaxUploadBytes int64
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	env := &strictEnv{}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Database: database.DBConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              env.int("DB_PORT", 5432),
			Username:          getEnv("DB_USER", "library"),
			Password:          getEnv("DB_PASSWORD", "secret"),
			DBName:            getEnv("DB_NAME", "library_dev"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 25)),
			MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			MaxRetries:        env.int("DB_MAX_RETRIES", 5),
			RetryDelay:        env.duration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "*"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			Expiry: env.duration("JWT_EXPIRY", 24*time.Hour),
		},
		Auth: AuthConfig{
			AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", "admin@gmail.com"))),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "local"),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "public"),
			MaxUploadBytes: int64(getEnvInt("STORAGE_MAX_UPLOAD_MB", 5)) * 1024 * 1024,
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "library"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNECTIONS must not exceed DB_MAX_CONNECTIONS")
	}
	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL must not be empty")
	}

	for _, o := range c.CORS.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS entry %q must be * or an http(s) origin", o)
		}
	}

	switch c.Storage.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want local or minio)", c.Storage.Driver)
	}

	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, defaultValue), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// strictEnv parses typed values and collects every malformed one.
type strictEnv struct {
	errs []error
}

func (e *strictEnv) int(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultValue
	}
	return v
}

func (e *strictEnv) duration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultValue
	}
	return v
}
