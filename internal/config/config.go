package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Inventory InventoryConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	ListenAddr     string
	RequestTimeout time.Duration
}

// DatabaseConfig holds the Postgres connection and migration settings.
type DatabaseConfig struct {
	URL           string
	MigrationsDir string
}

// InventoryConfig carries business settings: the set of locations inventory
// can be listed for. Empty means any location is accepted.
type InventoryConfig struct {
	Locations []string
}

// CORSConfig holds allowed origins for the SPA frontend.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds the per-IP sliding window limits for the API.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads environment variables (optionally from the provided .env file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			ListenAddr:     getenvWithDefault("APP_HOST", ":8080"),
			RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			MigrationsDir: getenvWithDefault("MIGRATIONS_DIR", "migrations"),
		},
		Inventory: InventoryConfig{
			Locations: splitList(os.Getenv("LOCATIONS")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getenvWithDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		},
		RateLimit: RateLimitConfig{
			Requests: getenvInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getenvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	return cfg, nil
}

// KnownLocation reports whether the location is allowed. An unconfigured
// location list accepts everything.
func (c *Config) KnownLocation(location string) bool {
	if len(c.Inventory.Locations) == 0 {
		return true
	}
	for _, loc := range c.Inventory.Locations {
		if loc == location {
			return true
		}
	}
	return false
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
