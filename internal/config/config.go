// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	RefreshMinutes int // Portfolio cache refresh period

	// Title publisher settings. The portfolio API works without
	// these; the update-title endpoint fails fast when they are
	// missing.
	YouTubeVideoID      string
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeRefreshToken string

	// Shared secret for the cron-invoked update-title endpoint.
	// Empty disables the check.
	CronSecret string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnvAsInt("PORT", 8000),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RefreshMinutes:      getEnvAsInt("REFRESH_MINUTES", 15),
		YouTubeVideoID:      getEnv("YOUTUBE_VIDEO_ID", ""),
		YouTubeClientID:     getEnv("YOUTUBE_CLIENT_ID", ""),
		YouTubeClientSecret: getEnv("YOUTUBE_CLIENT_SECRET", ""),
		YouTubeRefreshToken: getEnv("YOUTUBE_REFRESH_TOKEN", ""),
		CronSecret:          getEnv("CRON_SECRET", ""),
	}

	return cfg, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
