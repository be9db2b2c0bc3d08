// Package config provides configuration management for VOC Radar.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// MongoDB settings
	MongoURI string
	MongoDB  string

	// Report settings
	ReportsDir    string
	TopicsFile    string
	TemplatesFile string
	RecentLimit   int

	// Forum crawl settings
	ForumListURL string
	FetchLimit   int
	FetchDelay   time.Duration

	// Daemon settings
	FetchInterval time.Duration
	ReportHour    int

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		// MongoDB
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "vocradar"),

		// Reports
		ReportsDir:    getEnv("REPORTS_DIR", "reports"),
		TopicsFile:    getEnv("TOPICS_FILE", "configs/topics.yaml"),
		TemplatesFile: getEnv("TEMPLATES_FILE", "configs/templates.yaml"),
		RecentLimit:   getEnvInt("RECENT_LIMIT", 500),

		// Crawl
		ForumListURL: getEnv("FORUM_LIST_URL", ""),
		FetchLimit:   getEnvInt("FETCH_LIMIT", 30),
		FetchDelay:   getEnvDuration("FETCH_DELAY", 1500*time.Millisecond),

		// Daemon
		FetchInterval: getEnvDuration("FETCH_INTERVAL", 1*time.Hour),
		ReportHour:    getEnvInt("REPORT_HOUR", 21),

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.ForumListURL == "" {
		log.Warn().Msg("FORUM_LIST_URL not set, list collection will be disabled")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
