package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Migrations
	MigrationsDir string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secret files (<NAME>_FILE convention) and then to development
// defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "8080"),
		ServerHost: getValue("SERVER_HOST", "0.0.0.0"),

		DBHost:     getValue("DB_HOST", "localhost"),
		DBPort:     getValue("DB_PORT", "5432"),
		DBUser:     getValue("DB_USER", "postgres"),
		DBPassword: getValue("DB_PASSWORD", ""),
		DBName:     getValue("DB_NAME", "platewise"),
		DBSSLMode:  getValue("DB_SSL_MODE", "disable"),

		RedisHost:     getValue("REDIS_HOST", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		RedisURL:      getValue("REDIS_URL", ""),

		JWTSecret: getValue("JWT_SECRET", ""),

		MigrationsDir: getValue("MIGRATIONS_DIR", "migrations"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a configuration value: the environment variable wins,
// then the secret file named by <key>_FILE, then the Docker secrets
// directory, then the default.
func getValue(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if file := os.Getenv(key + "_FILE"); file != "" {
		if data, err := os.ReadFile(file); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory.
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
