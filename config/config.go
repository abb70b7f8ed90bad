package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds application configuration
type Config struct {
	// Server
	ServerPort      string
	GinMode         string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Upstream status page
	UpstreamBaseURL   string
	UpstreamTimeout   time.Duration
	UpstreamUserAgent string

	// Local files
	TrainListPath string
	PublicDir     string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),

		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "https://www.railyatri.in"),
		UpstreamTimeout:   getDurationEnv("UPSTREAM_TIMEOUT", 15*time.Second),
		UpstreamUserAgent: getEnv("UPSTREAM_USER_AGENT", defaultUserAgent),

		TrainListPath: getEnv("TRAIN_LIST_PATH", "train_list.json"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("WARNING: invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
