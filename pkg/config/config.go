package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Store backends selectable via MIZANIA_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig
	Locale  string
	LogJSON bool
}

type StoreConfig struct {
	Backend    string
	DataDir    string
	ReceiptDir string
}

// Load reads configuration from environment variables, honoring a .env
// file in the working directory when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("MIZANIA_DATA_DIR", defaultDataDir())

	cfg := &Config{
		Store: StoreConfig{
			Backend:    getEnv("MIZANIA_BACKEND", BackendFile),
			DataDir:    dataDir,
			ReceiptDir: getEnv("MIZANIA_RECEIPT_DIR", filepath.Join(dataDir, "receipts")),
		},
		Locale:  getEnv("MIZANIA_LOCALE", "en"),
		LogJSON: getEnvAsBool("MIZANIA_LOG_JSON", false),
	}

	switch cfg.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown MIZANIA_BACKEND %q", cfg.Store.Backend)
	}

	if cfg.Locale != "en" && cfg.Locale != "ar" {
		return nil, fmt.Errorf("unsupported MIZANIA_LOCALE %q", cfg.Locale)
	}

	return cfg, nil
}

// SQLitePath returns the database file path for the sqlite backend.
func (c *StoreConfig) SQLitePath() string {
	return filepath.Join(c.DataDir, "mizania.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mizania"
	}
	return filepath.Join(home, ".mizania")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	switch value {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	}
	return defaultValue
}
