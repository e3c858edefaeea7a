// Package config provides configuration for the playground service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the playground service configuration.
type Config struct {
	// Server settings
	HTTPPort int
	BaseURL  string

	// Admission limits (enforced through the policy engine)
	MaxProgramBytes int
	MaxEventBytes   int

	// WebSocket settings
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	MaxMessageSize int64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		MaxProgramBytes: getEnvInt("MAX_PROGRAM_BYTES", 65536),
		MaxEventBytes:   getEnvInt("MAX_EVENT_BYTES", 262144),
		WSReadTimeout:   time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		WSWriteTimeout:  time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		MaxMessageSize:  int64(getEnvInt("WS_MAX_MESSAGE_BYTES", 524288)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
