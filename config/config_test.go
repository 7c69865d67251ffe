package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg := Load()

	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 336*time.Hour, cfg.SessionTTL)
	assert.Equal(t, StorageBackendPostgres, cfg.StorageBackend)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "20")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("STORAGE_BACKEND", StorageBackendMemory)

	cfg := Load()

	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SessionCookieSecure)
	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, StorageBackendMemory, cfg.StorageBackend)
}

func TestPostgresURL(t *testing.T) {
	cfg := Config{
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresDB:       "fleet",
	}
	assert.Equal(t, "postgres://u:p@db:5433/fleet?sslmode=disable", cfg.PostgresURL())
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, ":8080", Config{AppPort: 8080}.HTTPAddr())
	assert.Equal(t, "127.0.0.1:9000", Config{HTTPHost: "127.0.0.1", AppPort: 9000}.HTTPAddr())
}
