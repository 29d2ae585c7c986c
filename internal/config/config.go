// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// FeedConfig holds settings for the live update feed
type FeedConfig struct {
	// TickInterval is the cadence of the update pump.
	TickInterval time.Duration
	// TickStep is the score increment applied to every monitored item on
	// each tick.
	TickStep int
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Feed           *FeedConfig
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// DefaultFeedConfig provides default live feed settings
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		TickInterval: time.Second,
		TickStep:     1,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Silent failure if no .env exists, which is fine
	_ = godotenv.Load()

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	feedConfig := DefaultFeedConfig()

	if intervalStr := os.Getenv("FEED_TICK_INTERVAL"); intervalStr != "" {
		if interval, err := time.ParseDuration(intervalStr); err == nil && interval > 0 {
			feedConfig.TickInterval = interval
		}
	}

	if stepStr := os.Getenv("FEED_TICK_STEP"); stepStr != "" {
		if step, err := strconv.Atoi(stepStr); err == nil {
			feedConfig.TickStep = step
		}
	}

	config := &Config{
		Server:         serverConfig,
		Feed:           feedConfig,
		AllowedOrigins: []string{"*"}, // Default to allow all origins
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
