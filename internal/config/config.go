package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
// It follows the 12-factor app methodology by prioritizing environment variables.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Engine  EngineConfig
}

type AppConfig struct {
	Environment string
}

type StorageConfig struct {
	// Backend selects the blob store: pebble, redis or memory.
	Backend string
	Path    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EngineConfig struct {
	CurrentUserID  string
	SentDelay      time.Duration
	DeliveredDelay time.Duration
	TypingTTL      time.Duration
}

// LoadConfig loads configuration from environment variables.
// Defaults can be set here if needed.
func LoadConfig() (*Config, error) {
	return &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "pebble"),
			Path:    getEnv("STORAGE_PATH", "data/emberchat"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Engine: EngineConfig{
			CurrentUserID:  getEnv("CURRENT_USER_ID", "me"),
			SentDelay:      getEnvAsDuration("DELIVERY_SENT_DELAY", 300*time.Millisecond),
			DeliveredDelay: getEnvAsDuration("DELIVERY_DELIVERED_DELAY", 500*time.Millisecond),
			TypingTTL:      getEnvAsDuration("TYPING_TTL", 3*time.Second),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
