// Package config provides configuration management for matchwire.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// LLM provider credentials. Presence decides provider selection:
	// openrouter > gemini > openai > mock.
	OpenRouterAPIKey string
	OpenRouterModel  string
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	AnthropicAPIKey  string

	// MongoDB settings
	MongoURI string
	MongoDB  string

	// Redis settings (optional, for the distributed import cooldown)
	RedisAddr string

	// Import webhook endpoints (n8n workflow engine)
	WebhookLineups      string
	WebhookEvents       string
	WebhookStatistics   string
	WebhookPlayerStats  string
	WebhookPreMatch     string
	WebhookCountry      string
	WebhookCompetitions string
	WebhookMatches      string
	ImportCooldown      time.Duration

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		// LLM providers
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),

		// MongoDB
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "matchwire"),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", ""),

		// Import webhooks
		WebhookLineups:      getEnv("WEBHOOK_LINEUPS", "http://localhost:5678/webhook/lineups"),
		WebhookEvents:       getEnv("WEBHOOK_EVENTS", "http://localhost:5678/webhook/events"),
		WebhookStatistics:   getEnv("WEBHOOK_STATISTICS", "http://localhost:5678/webhook/statistics"),
		WebhookPlayerStats:  getEnv("WEBHOOK_PLAYER_STATISTICS", "http://localhost:5678/webhook/player-statistics"),
		WebhookPreMatch:     getEnv("WEBHOOK_PREMATCH", "http://localhost:5678/webhook/import-prematch"),
		WebhookCountry:      getEnv("WEBHOOK_COUNTRY", "http://localhost:5678/webhook/import-country"),
		WebhookCompetitions: getEnv("WEBHOOK_COMPETITIONS", "http://localhost:5678/webhook/import-team-competitions"),
		WebhookMatches:      getEnv("WEBHOOK_MATCHES", "http://localhost:5678/webhook/import-matches"),
		ImportCooldown:      getEnvDuration("IMPORT_COOLDOWN", time.Hour),

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.OpenRouterAPIKey == "" && c.GeminiAPIKey == "" && c.OpenAIAPIKey == "" {
		log.Warn().Msg("No LLM API key set, ticker generation will use the mock provider")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
