package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/posts/pkg/cryptox"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	DatabaseDriver      string        // Optional: sqlite or postgres (default: sqlite)
	DatabaseURL         string        // Required for postgres: connection string
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./posts.db)
	JWTSecret           string        // Required: HMAC secret for session tokens, at least 32 bytes
	PepperFile          string        // Optional: path to the password pepper file, generated when missing
	HashWorkers         int           // Optional: concurrent password hash jobs (default: GOMAXPROCS)
	HashTimeout         time.Duration // Optional: max wait for a password hash (default: 10s)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadEnvFile loads variables from path into the environment without
// overriding ones already set. A missing file is not an error when path is
// the default ".env".
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if path == ".env" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver:      getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "posts.db"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		PepperFile:          os.Getenv("PEPPER_FILE"),
		HashWorkers:         getEnvIntOrDefault("HASH_WORKERS", 0),
		HashTimeout:         getEnvDurationOrDefault("HASH_TIMEOUT", cryptox.DefaultHashTimeout),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports configuration that would stop the service from starting.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
