package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexabank/crm-insights/pkg/metrics"
)

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "down: " + err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	if err := h.mongo.Ping(ctx); err != nil {
		checks["mongodb"] = "down: " + err.Error()
		healthy = false
	} else {
		checks["mongodb"] = "ok"
	}

	if provider := h.ai.GetAvailableProvider(); provider != nil {
		checks["ai"] = "ok (" + provider.Name() + ")"
	} else {
		// AI being down degrades insights but the CRM still works.
		checks["ai"] = "unavailable"
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// GetMetrics handles GET /api/metrics
func (h *Handler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.GetMetrics())
}

// GetPrometheusMetrics handles GET /metrics
func (h *Handler) GetPrometheusMetrics(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; version=0.0.4", []byte(metrics.GetPrometheusMetrics()))
}
