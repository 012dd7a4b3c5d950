package config

import (
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Analysis AnalysisConfig
	External ExternalConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

type AnalysisConfig struct {
	RequestTimeout     time.Duration
	MaxRetries         int
	RetryBackoff       time.Duration
	RateLimitPerSecond int
}

type ExternalConfig struct {
	TrendsAPIURL string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			MaxRetries:         getIntEnv("MAX_RETRIES", 3),
			RetryBackoff:       getDurationEnv("RETRY_BACKOFF", "2s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 10),
		},
		External: ExternalConfig{
			TrendsAPIURL: getEnv("TRENDS_API_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
