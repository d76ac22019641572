package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "admin@gmail.com", cfg.Auth.AdminEmail)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("ADMIN_EMAIL", "  Root@Example.COM ")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, "root@example.com", cfg.Auth.AdminEmail)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.False(t, cfg.App.AutoMigrate)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad expiry", env: map[string]string{"JWT_EXPIRY": "soon"}},
		{name: "negative expiry", env: map[string]string{"JWT_EXPIRY": "-1h"}},
		{name: "unknown storage", env: map[string]string{"STORAGE_DRIVER": "ftp"}},
		{name: "bad db port", env: map[string]string{"DB_PORT": "postgres"}},
		{name: "origin without scheme", env: map[string]string{"CORS_ALLOWED_ORIGINS": "localhost:5173"}},
		{name: "min conns above max", env: map[string]string{"DB_MIN_CONNECTIONS": "30", "DB_MAX_CONNECTIONS": "10"}},
		{name: "default secret in production", env: map[string]string{"APP_ENV": "production", "JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Database(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.RetryDelay)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)

	t.Setenv("DB_PORT", "abc")
	t.Setenv("DB_CONNECT_TIMEOUT", "forever")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "DB_CONNECT_TIMEOUT")
}

func TestLoad_CORSOrigins(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:5173 ,")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}
