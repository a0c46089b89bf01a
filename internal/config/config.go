package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Sheet  SheetConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SheetConfig holds sheet engine tuning knobs
type SheetConfig struct {
	// AutosaveInterval is the quiet period before a scheduled write fires
	AutosaveInterval time.Duration

	// NoticeInterval is the minimum gap between repeated storage-failure
	// notices of the same class
	NoticeInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnvOrDefault("SHEETD_ADDR", ":8085"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Sheet: SheetConfig{
			AutosaveInterval: getEnvAsDurationOrDefault("SHEET_AUTOSAVE_INTERVAL", 250*time.Millisecond),
			NoticeInterval:   getEnvAsDurationOrDefault("SHEET_NOTICE_INTERVAL", 2500*time.Millisecond),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
