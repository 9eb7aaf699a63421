// Command seed loads the demo dataset into MongoDB. It is a no-op when
// customer records already exist.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/env"
	"github.com/nexabank/crm-insights/pkg/logger"
	"github.com/nexabank/crm-insights/pkg/mongo"
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

	mongoClient, err := mongo.NewClient(cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := store.NewRepository(mongoClient)
	if err := repo.Seed(ctx); err != nil {
		logger.Log.Fatal("Seeding failed", zap.Error(err))
	}

	count, err := repo.CountCustomers(ctx)
	if err != nil {
		logger.Log.Fatal("Failed to count customers", zap.Error(err))
	}
	logger.Log.Info("Seeding complete", zap.Int64("customers", count))
}
