package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bolumrehberi/backend/internal/adapters/cache"
	"github.com/bolumrehberi/backend/internal/adapters/database"
	"github.com/bolumrehberi/backend/internal/adapters/providers/generative"
	"github.com/bolumrehberi/backend/internal/adapters/providers/places"
	"github.com/bolumrehberi/backend/internal/api/handlers"
	"github.com/bolumrehberi/backend/internal/api/routes"
	"github.com/bolumrehberi/backend/internal/application/services"
	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/internal/domain/repositories"
	"github.com/bolumrehberi/backend/internal/infrastructure/clients/postgres"
	"github.com/bolumrehberi/backend/internal/infrastructure/clients/redis"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
	"github.com/bolumrehberi/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client; the application works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// The database only backs feedback; absence must not block startup
	var feedbackRepo repositories.FeedbackRepository
	if cfg.Database.Configured() {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		} else {
			defer pgClient.Close()
			feedbackRepo = database.NewFeedbackAdapter(pgClient)
			log.Println("PostgreSQL client initialized successfully")
		}
	} else {
		log.Println("DB_HOST is not set; feedback will be logged, not persisted")
	}

	// Generative provider: missing credential leaves analysis degraded
	// instead of crashing or baking in a placeholder key
	var generativeProvider providers.GenerativeProvider
	if cfg.Generative.APIKey == "" {
		log.Println("Warning: GENERATIVE_API_KEY is not set; symptom analysis is degraded")
	} else {
		switch cfg.Generative.Provider {
		case "openai":
			client, err := generative.NewOpenAIClient(&cfg.Generative)
			if err != nil {
				log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
			} else {
				generativeProvider = client
				log.Printf("OpenAI client initialized (model %s)", cfg.Generative.Model)
			}
		default:
			client, err := generative.NewGeminiClient(&cfg.Generative)
			if err != nil {
				log.Printf("Warning: Failed to initialize Gemini client: %v", err)
			} else {
				generativeProvider = client
				log.Printf("Gemini client initialized (model %s)", cfg.Generative.Model)
			}
		}
	}

	// Places provider: missing credential routes every search to the mock set
	var livePlaces providers.PlacesProvider
	if cfg.Places.APIKey == "" {
		log.Println("Warning: PLACES_API_KEY is not set; hospital search serves mock data")
	} else {
		livePlaces = places.NewGooglePlacesProvider(cfg.Places.APIKey, cacheProvider)
		log.Println("Google places provider initialized")
	}
	mockPlaces := places.NewMockPlacesProvider()

	// Initialize services
	analysisService := services.NewAnalysisService(generativeProvider)
	hospitalService := services.NewHospitalService(livePlaces, mockPlaces)
	hospitalService.SetMetrics(metrics)
	feedbackService := services.NewFeedbackService(feedbackRepo)

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, cacheProvider)

	// Set up router
	router := routes.NewRouter(
		analysisHandler,
		hospitalHandler,
		feedbackHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
