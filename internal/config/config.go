package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT (verification only; the auth provider issues tokens)
	JWTSecret string

	// AI gateway (OpenAI-compatible chat completions)
	GatewayURL     string
	GatewayAPIKey  string
	GatewayModel   string
	GatewayRetries int

	// Chat limits
	ChatDailyQuota int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("ENV", "development"),
		DatabaseURL:    mustGetEnv("DATABASE_URL"),
		RedisURL:       mustGetEnv("REDIS_URL"),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		GatewayURL:     getEnvOrDefault("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		GatewayAPIKey:  mustGetEnv("AI_GATEWAY_API_KEY"),
		GatewayModel:   getEnvOrDefault("AI_GATEWAY_MODEL", "google/gemini-2.5-flash"),
		GatewayRetries: getEnvAsIntOrDefault("AI_GATEWAY_RETRIES", 2),
		ChatDailyQuota: getEnvAsIntOrDefault("CHAT_DAILY_QUOTA", 50),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
