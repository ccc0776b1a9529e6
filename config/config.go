package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Environment       string
	TwelveDataAPIKey  string
	TwelveDataURL     string
	CoinGeckoURL      string
	RefreshHour       int
	RefreshTimezone   string
	FetchDelaySeconds int
}

var AppConfig *Config

// LoadConfig loads environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		TwelveDataAPIKey:  getEnv("TWELVE_DATA_API_KEY", ""),
		TwelveDataURL:     getEnv("TWELVE_DATA_URL", "https://api.twelvedata.com"),
		CoinGeckoURL:      getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		RefreshHour:       getEnvInt("REFRESH_HOUR", 8),
		RefreshTimezone:   getEnv("REFRESH_TIMEZONE", "America/New_York"),
		FetchDelaySeconds: getEnvInt("FETCH_DELAY_SECONDS", 3),
	}

	AppConfig = config
	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
