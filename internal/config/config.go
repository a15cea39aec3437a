package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	Store        string
	LogLevel     string
	LogFile      string
	GeminiAPIKey string
}

// LoadConfig loads the configuration from environment variables. A .env file
// in the working directory is read first if there is one; real environment
// variables win over it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		SaveDir:      getenv("PETCARE_SAVE_DIR", ".saves"),
		Store:        getenv("PETCARE_STORE", StoreFile),
		LogLevel:     getenv("PETCARE_LOG_LEVEL", "info"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
	cfg.LogFile = getenv("PETCARE_LOG_FILE", filepath.Join(cfg.SaveDir, "petcare.log"))

	switch cfg.Store {
	case StoreFile, StoreSQLite:
	default:
		return nil, fmt.Errorf("PETCARE_STORE must be %q or %q, got %q", StoreFile, StoreSQLite, cfg.Store)
	}

	return cfg, nil
}

// SQLitePath is where the sqlite store keeps its database.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.SaveDir, "petcare.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
