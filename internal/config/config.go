// Package config loads runtime configuration from environment variables.
// A .env file is honored in development; in production the deployment
// platform sets real environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the scoreboard server.
type Config struct {
	Port          string // TCP port the HTTP server listens on
	DatabaseURL   string // Postgres connection string
	SessionSecret string // HMAC key for signing session tokens
	Env           string // "development", "staging", or "production"
}

// Load reads configuration from the environment, first loading a .env file
// if one exists. Missing .env is fine; DATABASE_URL and SESSION_SECRET are
// required and the caller fails startup without them.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:          port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Env:           env,
	}
}
