package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// Storage configuration
	DataDir string

	// OpenAI configuration (optional; used for catalog seeding and chat copy)
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Matching configuration
	MinMatchPercentage int
	MaxResults         int

	// Hour of day (0-23) for the daily suggestion push; -1 disables it
	DailySuggestionHour int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	// Required configurations
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	cfg.BotToken = botToken

	// Optional configurations with defaults
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-3.5-turbo")

	cfg.MinMatchPercentage, err = getEnvInt("MIN_MATCH_PERCENTAGE", 50)
	if err != nil {
		return nil, err
	}
	if cfg.MinMatchPercentage < 0 || cfg.MinMatchPercentage > 100 {
		return nil, fmt.Errorf("MIN_MATCH_PERCENTAGE must be between 0 and 100, got %d", cfg.MinMatchPercentage)
	}

	cfg.MaxResults, err = getEnvInt("MAX_RESULTS", 20)
	if err != nil {
		return nil, err
	}
	if cfg.MaxResults <= 0 {
		return nil, fmt.Errorf("MAX_RESULTS must be positive, got %d", cfg.MaxResults)
	}

	cfg.DailySuggestionHour, err = getEnvInt("DAILY_SUGGESTION_HOUR", 17)
	if err != nil {
		return nil, err
	}
	if cfg.DailySuggestionHour > 23 {
		return nil, fmt.Errorf("DAILY_SUGGESTION_HOUR must be between 0 and 23 (or negative to disable), got %d", cfg.DailySuggestionHour)
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt returns the integer value of the environment variable or the default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
