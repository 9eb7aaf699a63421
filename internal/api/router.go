// Package api wires the HTTP surface: middleware chain and route table.
package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nexabank/crm-insights/internal/api/handlers"
	"github.com/nexabank/crm-insights/pkg/env"
	"github.com/nexabank/crm-insights/pkg/middleware"
	"github.com/nexabank/crm-insights/pkg/otel"
)

const maxRequestBody = 1 << 20

// SetupRouter builds the gin engine with the full middleware chain and all
// routes registered.
func SetupRouter(cfg *env.Config, h *handlers.Handler, redisClient *redis.Client) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestSizeLimit(maxRequestBody))
	if cfg.OTELEnabled {
		r.Use(otel.GinMiddleware())
	}
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s\n",
			param.TimeStamp.Format(time.RFC3339),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
		)
	}))

	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key", "X-Trace-ID")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", h.GetPrometheusMetrics)

	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.APIRateLimitRPM)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.IdempotencyMiddleware(redisClient))
	apiGroup.Use(rateLimiter.Middleware())
	{
		apiGroup.GET("/metrics", h.GetMetrics)

		apiGroup.GET("/customers", h.ListCustomers)
		apiGroup.POST("/customers", h.CreateCustomer)

		customer := apiGroup.Group("/customers/:id")
		customer.Use(middleware.ValidateIDParam("id"))
		{
			customer.GET("", h.GetCustomer)
			customer.PUT("", h.UpdateCustomer)
			customer.DELETE("", h.DeleteCustomer)

			customer.GET("/interactions", h.ListInteractions)
			customer.POST("/interactions", h.AddInteraction)

			customer.GET("/insights", h.GetInsights)
			customer.GET("/insights/stream", h.StreamInsights)
			customer.POST("/analyze", h.AnalyzeCustomer)
			customer.POST("/recommendations", h.RecommendAction)
			customer.GET("/recommendations", h.ListRecommendations)
		}

		apiGroup.GET("/analytics/summary", h.GetAnalyticsSummary)
		apiGroup.GET("/analytics/performance", h.GetPerformanceMetrics)

		apiGroup.POST("/sentiment/test", h.TestSentiment)
	}

	return r
}
