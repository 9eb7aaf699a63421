// Package handlers contains the HTTP handlers for the CRM insights API.
package handlers

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/insight"
	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/ai"
	"github.com/nexabank/crm-insights/pkg/env"
	"github.com/nexabank/crm-insights/pkg/mongo"
)

// Handler holds the dependencies shared by all API handlers
type Handler struct {
	cfg      *env.Config
	logger   *zap.Logger
	redis    *redis.Client
	mongo    *mongo.Client
	repo     *store.Repository
	ai       *ai.Manager
	insights *insight.Manager
}

func NewHandler(
	cfg *env.Config,
	logger *zap.Logger,
	redisClient *redis.Client,
	mongoClient *mongo.Client,
	repo *store.Repository,
	aiManager *ai.Manager,
	insights *insight.Manager,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		redis:    redisClient,
		mongo:    mongoClient,
		repo:     repo,
		ai:       aiManager,
		insights: insights,
	}
}
