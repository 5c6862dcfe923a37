// Matchwire - live-ticker backend for football matches.
// Generates commentary from match events via LLM providers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/matchwire/matchwire/internal/api"
	"github.com/matchwire/matchwire/internal/config"
	"github.com/matchwire/matchwire/internal/importer"
	"github.com/matchwire/matchwire/internal/llm"
	"github.com/matchwire/matchwire/internal/storage"
	"github.com/matchwire/matchwire/internal/ticker"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("Matchwire - Starting ticker engine")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Initialize storage
	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	// Select the LLM provider for this process
	provider := llm.Select(llm.Config{
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		OpenRouterModel:  cfg.OpenRouterModel,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		GeminiModel:      cfg.GeminiModel,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
	})

	// Import cooldown: Redis when configured, per-process otherwise
	var limiter importer.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, falling back to in-memory cooldown")
			limiter = importer.NewMemoryLimiter(cfg.ImportCooldown)
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("Redis cooldown enabled")
			limiter = importer.NewRedisLimiter(rdb, cfg.ImportCooldown)
		}
	} else {
		limiter = importer.NewMemoryLimiter(cfg.ImportCooldown)
	}

	// Import notifier
	notifier := importer.NewNotifier(map[importer.Topic]string{
		importer.TopicLineups:      cfg.WebhookLineups,
		importer.TopicEvents:       cfg.WebhookEvents,
		importer.TopicStatistics:   cfg.WebhookStatistics,
		importer.TopicPlayerStats:  cfg.WebhookPlayerStats,
		importer.TopicPreMatch:     cfg.WebhookPreMatch,
		importer.TopicCountry:      cfg.WebhookCountry,
		importer.TopicCompetitions: cfg.WebhookCompetitions,
		importer.TopicMatches:      cfg.WebhookMatches,
	}, limiter)
	log.Info().Msg("Import notifier initialized")

	// Initialize generation service
	service := ticker.NewService(store, store, provider)
	log.Info().Str("provider", provider.Name()).Msg("Ticker service initialized")

	// Initialize API server
	handlers := api.NewHandlers(store, service, notifier)
	apiServer := api.NewServer(handlers, cfg.HTTPAddr)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("Matchwire engine running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown error")
	}

	log.Info().Msg("Matchwire engine stopped")
}
