// Command check-db is a connection diagnostic for the MongoDB backing store.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/env"
	"github.com/nexabank/crm-insights/pkg/logger"
	"github.com/nexabank/crm-insights/pkg/mongo"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("Database Connection Diagnostic Tool")
	fmt.Println("========================================")
	fmt.Println()

	cfg, err := env.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	fmt.Printf("Database Name: %s\n", cfg.DBName)
	fmt.Println()

	client, err := mongo.NewClient(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Test 1: Pinging MongoDB...")
	if err := client.Ping(ctx); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		fmt.Println()
		fmt.Println("Ensure MongoDB is running and accessible,")
		fmt.Println("and check MONGO_URI and DB_NAME in the .env file.")
		return
	}
	fmt.Println("OK")
	fmt.Println()

	fmt.Println("Test 2: Counting records...")
	repo := store.NewRepository(client)

	customers, err := repo.CountCustomers(ctx)
	if err != nil {
		fmt.Printf("ERROR counting customers: %v\n", err)
		return
	}
	interactions, err := repo.CountInteractions(ctx)
	if err != nil {
		fmt.Printf("ERROR counting interactions: %v\n", err)
		return
	}
	recommendations, err := repo.CountRecommendations(ctx)
	if err != nil {
		fmt.Printf("ERROR counting recommendations: %v\n", err)
		return
	}

	fmt.Printf("  customers:       %d\n", customers)
	fmt.Printf("  interactions:    %d\n", interactions)
	fmt.Printf("  recommendations: %d\n", recommendations)
	fmt.Println()

	if customers == 0 {
		fmt.Println("No customers found. Run cmd/seed to load the demo dataset.")
		return
	}
	fmt.Println("Database looks healthy.")
}
