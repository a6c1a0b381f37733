package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	ServerAddress string

	// Authorization: identities allowed to manage listings and auctions.
	// Resolved once at startup; there is no hardcoded admin account.
	Admins []string

	// Postgres; empty conn string means the in-memory store is used.
	PostgresConn     string
	PostgresDatabase string

	// Events
	EventBufferSize int
}

// Load configuration from environment variables, with .env support.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	cfg := &Config{}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", ":8080")
	cfg.PostgresConn = getEnv("POSTGRES_CONN", "")
	cfg.PostgresDatabase = getEnv("POSTGRES_DATABASE", "")

	admins, exists := os.LookupEnv("AUCTION_ADMINS")
	if !exists {
		return nil, fmt.Errorf("missing required environment variable: AUCTION_ADMINS")
	}
	for _, admin := range strings.Split(admins, ",") {
		admin = strings.TrimSpace(admin)
		if admin != "" {
			cfg.Admins = append(cfg.Admins, admin)
		}
	}
	if len(cfg.Admins) == 0 {
		return nil, fmt.Errorf("AUCTION_ADMINS must name at least one identity")
	}

	var err error
	cfg.EventBufferSize, err = strconv.Atoi(getEnv("EVENT_BUFFER_SIZE", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_BUFFER_SIZE: %w", err)
	}

	return cfg, nil
}
