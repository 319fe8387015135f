// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// Config holds the application configuration.
type Config struct {
	DatasetPath  string
	DatabasePath string
	HTTPAddr     string
	AppEnv       string
	LogLevel     string
	LogFile      string
	YearBase     int
	ReadTimeout  time.Duration
	WatchDataset bool
	Notify       bool
}

// Default values
const (
	defaultDatasetPath = "df_cleaned.csv"
	defaultHTTPAddr    = ":8080"
	defaultAppEnv      = "dev"
	defaultLogLevel    = "info"
	defaultYearBase    = 2011
	defaultReadTimeout = 10 * time.Second

	appDirName = "bikeshare-dashboard"
)

var (
	validAppEnvs   = []string{"dev", "prod"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatasetPath:  getEnvString("DATASET_PATH", defaultDatasetPath),
		DatabasePath: getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		HTTPAddr:     getEnvString("HTTP_ADDR", defaultHTTPAddr),
		AppEnv:       strings.ToLower(getEnvString("APP_ENV", defaultAppEnv)),
		LogLevel:     strings.ToLower(getEnvString("LOG_LEVEL", defaultLogLevel)),
		LogFile:      getEnvString("LOG_FILE", getDefaultLogPath()),
		YearBase:     getEnvInt("YEAR_BASE", defaultYearBase),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", defaultReadTimeout),
		WatchDataset: getEnvBool("WATCH_DATASET", false),
		Notify:       getEnvBool("NOTIFY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !lo.Contains(validAppEnvs, c.AppEnv) {
		return fmt.Errorf("invalid APP_ENV %q (expected one of %s)", c.AppEnv, strings.Join(validAppEnvs, ", "))
	}
	if !lo.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid LOG_LEVEL %q (expected one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH must not be empty")
	}
	return nil
}

// IsDev reports whether the development environment is selected.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// DatasetIsDatabase reports whether DatasetPath points at a SQLite cache
// rather than a CSV file.
func (c *Config) DatasetIsDatabase() bool {
	switch strings.ToLower(filepath.Ext(c.DatasetPath)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".bikeshare", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite cache.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(home, ".config", appDirName, "cache.db")
}

// getDefaultLogPath returns the default log file used by the terminal UI.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bsd.log"
	}
	return filepath.Join(home, ".config", appDirName, "bsd.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
