// Package config loads service configuration from environment variables
// with defaults, validating on startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty selects the in-memory
	// registry.
	URL string
}

type StorageConfig struct {
	// Dir is the directory for uploaded and cleaned file bytes.
	Dir string
}

type UploadConfig struct {
	// MaxFileSize caps a single upload, in bytes.
	MaxFileSize int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            envString("SERVER_HOST", "0.0.0.0"),
			Port:            envInt("SERVER_PORT", 8080),
			ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:     envDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL: envString("DATABASE_URL", ""),
		},
		Storage: StorageConfig{
			Dir: envString("STORAGE_DIR", "data/uploads"),
		},
		Upload: UploadConfig{
			MaxFileSize: envInt64("UPLOAD_MAX_FILE_SIZE", 100<<20),
		},
		Logging: LoggingConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "text"),
		},
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT %d", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileSize <= 0 {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_FILE_SIZE %d", cfg.Upload.MaxFileSize)
	}
	return cfg, nil
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			return x
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
