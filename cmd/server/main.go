package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/api"
	"github.com/nexabank/crm-insights/internal/api/handlers"
	"github.com/nexabank/crm-insights/internal/insight"
	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/ai"
	"github.com/nexabank/crm-insights/pkg/env"
	"github.com/nexabank/crm-insights/pkg/logger"
	"github.com/nexabank/crm-insights/pkg/mongo"
	"github.com/nexabank/crm-insights/pkg/otel"
)

func main() {
	cfg, err := env.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize OpenTelemetry if enabled
	if cfg.OTELEnabled {
		shutdown, err := otel.InitTracing("crm-insights", "1.0.0", cfg.OTELEndpoint)
		if err != nil {
			logger.Log.Warn("Failed to initialize OpenTelemetry", zap.Error(err))
		} else {
			defer shutdown()
			logger.Log.Info("OpenTelemetry tracing enabled", zap.String("endpoint", cfg.OTELEndpoint))
		}
	}

	logger.Log.Info("Starting CRM Insights server",
		zap.String("env", cfg.AppEnv),
		zap.String("port", cfg.AppPort),
	)

	// Initialize Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize MongoDB
	mongoClient, err := mongo.NewClient(cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Log.Warn("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	repo := store.NewRepository(mongoClient)

	if cfg.SeedSampleData {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := repo.Seed(ctx); err != nil {
			logger.Log.Warn("Failed to seed sample data", zap.Error(err))
		}
		cancel()
	}

	timeout := time.Duration(cfg.AITimeoutMs) * time.Millisecond
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Initialize AI providers
	providers := []ai.Provider{}

	if cfg.FeatureAI {
		// Groq provider
		if cfg.GroqApiKey != "" {
			groqProvider := ai.NewGroqProvider(
				cfg.GroqApiKey,
				cfg.GroqModel,
				cfg.GroqMaxTokens,
				timeout,
				logger.Log,
			)
			if groqProvider.IsAvailable() {
				providers = append(providers, groqProvider)
				logger.Log.Info("Groq provider initialized", zap.String("model", cfg.GroqModel))
			}
		}

		// OpenAI provider
		if cfg.OpenAIApiKey != "" {
			openAIProvider := ai.NewOpenAIProvider(
				cfg.OpenAIApiKey,
				cfg.OpenAIModel,
				cfg.OpenAIMaxTokens,
				timeout,
				logger.Log,
			)
			if openAIProvider.IsAvailable() {
				providers = append(providers, openAIProvider)
				logger.Log.Info("OpenAI provider initialized", zap.String("model", cfg.OpenAIModel))
			}
		}

		if len(providers) == 0 {
			logger.Log.Warn("No AI providers available - insight requests will fall back to keyword scoring")
		}
	} else {
		logger.Log.Info("AI features are disabled")
	}

	aiManager := ai.NewManager(providers, logger.Log)
	insights := insight.NewManager(repo, aiManager, timeout, logger.Log)

	handler := handlers.NewHandler(cfg, logger.Log, redisClient, mongoClient, repo, aiManager, insights)
	router := api.SetupRouter(cfg, handler, redisClient)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("CRM Insights server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
