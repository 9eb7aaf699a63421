package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/analytics"
	"github.com/nexabank/crm-insights/pkg/errors"
)

const analyticsSummaryCacheKey = "analytics:summary"

type analyticsSummaryResponse struct {
	Empty   bool               `json:"empty"`
	Message string             `json:"message,omitempty"`
	Summary *analytics.Summary `json:"summary,omitempty"`
}

// GetAnalyticsSummary handles GET /api/analytics/summary. Results are cached
// in Redis for a short window since the rollup scans every customer.
func (h *Handler) GetAnalyticsSummary(c *gin.Context) {
	if cached, err := h.redis.Get(c.Request.Context(), analyticsSummaryCacheKey).Bytes(); err == nil {
		var response analyticsSummaryResponse
		if json.Unmarshal(cached, &response) == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, response)
			return
		}
	}

	customers, err := h.repo.ListCustomers(c.Request.Context())
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	var response analyticsSummaryResponse
	summary, ok := analytics.Summarize(customers)
	if !ok {
		response = analyticsSummaryResponse{
			Empty:   true,
			Message: "No customer data available",
		}
	} else {
		response = analyticsSummaryResponse{Summary: &summary}
	}

	if encoded, err := json.Marshal(response); err == nil {
		ttl := time.Duration(h.cfg.AnalyticsCacheTTLSec) * time.Second
		if err := h.redis.Set(c.Request.Context(), analyticsSummaryCacheKey, encoded, ttl).Err(); err != nil {
			h.logger.Warn("failed to cache analytics summary", zap.Error(err))
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, response)
}

// GetPerformanceMetrics handles GET /api/analytics/performance, reporting
// record counts and how many stored recommendations have been acted on.
func (h *Handler) GetPerformanceMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	customers, err := h.repo.CountCustomers(ctx)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	interactions, err := h.repo.CountInteractions(ctx)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	positive, err := h.repo.CountPositiveInteractions(ctx)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	recommendations, err := h.repo.CountRecommendations(ctx)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	pending, err := h.repo.CountPendingRecommendations(ctx)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	completionRate := 0
	if recommendations > 0 {
		completed := recommendations - pending
		completionRate = int(math.Round(float64(completed) / float64(recommendations) * 100))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_customers":         customers,
		"total_interactions":      interactions,
		"positive_interactions":   positive,
		"total_recommendations":   recommendations,
		"pending_recommendations": pending,
		"completion_rate":         completionRate,
	})
}
