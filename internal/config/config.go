// ABOUTME: Centralized configuration for the Wingman backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the backend.
type Config struct {
	// Server settings
	Host string
	Port int

	// Storage settings
	DBPath string // empty means the XDG default path

	// Ollama settings
	OllamaURL       string
	Model           string // empty means pick by system memory
	GenerateTimeout time.Duration
	PullTimeout     time.Duration

	// Context engine settings
	ChatHistoryLimit int
	RecentWindowDays int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Host:             getEnv("WINGMAN_HOST", "127.0.0.1"),
		Port:             getEnvInt("WINGMAN_PORT", 8000),
		DBPath:           os.Getenv("WINGMAN_DB_PATH"),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		Model:            os.Getenv("WINGMAN_MODEL"),
		GenerateTimeout:  getEnvDuration("WINGMAN_GENERATE_TIMEOUT", 60*time.Second),
		PullTimeout:      getEnvDuration("WINGMAN_PULL_TIMEOUT", 5*time.Minute),
		ChatHistoryLimit: getEnvInt("WINGMAN_CHAT_HISTORY_LIMIT", 10),
		RecentWindowDays: getEnvInt("WINGMAN_RECENT_WINDOW_DAYS", 3),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("WINGMAN_PORT must be 1-65535, got %d", c.Port)
	}
	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("WINGMAN_GENERATE_TIMEOUT must be positive, got %s", c.GenerateTimeout)
	}
	if c.ChatHistoryLimit < 1 {
		return fmt.Errorf("WINGMAN_CHAT_HISTORY_LIMIT must be at least 1, got %d", c.ChatHistoryLimit)
	}
	if c.RecentWindowDays < 1 {
		return fmt.Errorf("WINGMAN_RECENT_WINDOW_DAYS must be at least 1, got %d", c.RecentWindowDays)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
