package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, after loading
// an optional .env file from the working directory.
//
// Recognized variables:
//
//	SERVER_ADDRESS            HTTP bind address
//	DATABASE_DSN              PostgreSQL DSN
//	SECRET_KEY                HMAC secret for session tokens
//	SESSION_VALIDITY          session lifetime, e.g. "24h"
func parseEnv(config *Config) {
	// .env file is optional.
	_ = godotenv.Load()

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("SESSION_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
}
