package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	HTTPHost string
	AppPort  int

	StorageBackend string
	MigrationsPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SessionCookieName   string
	SessionCookieSecure bool
	SessionTTL          time.Duration

	PageSize   int
	BcryptCost int

	AdminBotToken string
	AdminID       int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxiservice"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))

	cfg.HTTPHost = cast.ToString(getOrReturnDefault("HTTP_HOST", ""))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.StorageBackend = cast.ToString(getOrReturnDefault("STORAGE_BACKEND", StorageBackendPostgres))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxiservice"))

	cfg.SessionCookieName = cast.ToString(getOrReturnDefault("SESSION_COOKIE_NAME", "sessionid"))
	cfg.SessionCookieSecure = cast.ToBool(getOrReturnDefault("SESSION_COOKIE_SECURE", false))
	cfg.SessionTTL = cast.ToDuration(getOrReturnDefault("SESSION_TTL", "336h"))

	cfg.PageSize = cast.ToInt(getOrReturnDefault("PAGE_SIZE", 5))
	cfg.BcryptCost = cast.ToInt(getOrReturnDefault("BCRYPT_COST", 10))

	cfg.AdminBotToken = cast.ToString(getOrReturnDefault("ADMIN_BOT_TOKEN", ""))
	cfg.AdminID = cast.ToInt64(getOrReturnDefault("ADMIN_ID", 0))

	return cfg
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.AppPort)
}

// PostgresURL is the DSN shared by the pgx pool and the migrator.
func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
