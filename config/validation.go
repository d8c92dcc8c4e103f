package config

import (
	"fmt"
)

// ValidateConfig checks that every value the server cannot run without is
// present. Secrets get stricter treatment outside development.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return fmt.Errorf("database host, port and name are required")
	}

	env := GetEnvironment()
	if env == Production {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT secret is required in production")
		}
		if cfg.DBPassword == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	return nil
}
