package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Xavierhuang/ScheduleShare/internal/timeutil"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	OpenAIAPIKey string

	// Optional with defaults
	GoogleCredentialsFile string
	GoogleTokenFile       string
	DBPath                string
	HTTPPort              int
	Model                 string
	Temperature           float64
	Timezone              string
	MaxExtractTokens      int
	MaxRouteTokens        int
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		// Optional with defaults
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		DBPath:                getEnvOrDefault("SCHEDULESHARE_DB_PATH", "./scheduleshare.db"),
		HTTPPort:              getEnvAsIntOrDefault("SCHEDULESHARE_HTTP_PORT", 8080),
		Model:                 getEnvOrDefault("SCHEDULESHARE_MODEL", "gpt-4.1"),
		Temperature:           getEnvAsFloatOrDefault("SCHEDULESHARE_TEMPERATURE", 0.1),
		Timezone:              getEnvOrDefault("SCHEDULESHARE_TIMEZONE", timeutil.DefaultTimezone),
		MaxExtractTokens:      getEnvAsIntOrDefault("SCHEDULESHARE_MAX_EXTRACT_TOKENS", 500),
		MaxRouteTokens:        getEnvAsIntOrDefault("SCHEDULESHARE_MAX_ROUTE_TOKENS", 1000),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
