package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexabank/crm-insights/internal/analytics"
	"github.com/nexabank/crm-insights/internal/insight"
	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/errors"
	"github.com/nexabank/crm-insights/pkg/utils"
)

type insightsResponse struct {
	insight.SessionSnapshot
	PositiveSentimentRatio int `json:"positive_sentiment_ratio"`
}

// loadCustomer resolves the :id path customer or writes the error response
func (h *Handler) loadCustomer(c *gin.Context) (*store.Customer, bool) {
	id := c.GetInt64("id_int")

	customer, err := h.repo.GetCustomer(c.Request.Context(), id)
	if err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return nil, false
	}
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return nil, false
	}
	return customer, true
}

// GetInsights handles GET /api/customers/:id/insights. Selecting a customer
// is what creates the session, so the first call also kicks off the
// interaction-history fetch.
func (h *Handler) GetInsights(c *gin.Context) {
	customer, ok := h.loadCustomer(c)
	if !ok {
		return
	}

	session := h.insights.ForCustomer(customer)
	c.JSON(http.StatusOK, h.buildInsightsResponse(session))
}

// AnalyzeCustomer handles POST /api/customers/:id/analyze. The analysis runs
// asynchronously; the response carries the session state to poll or stream.
func (h *Handler) AnalyzeCustomer(c *gin.Context) {
	customer, ok := h.loadCustomer(c)
	if !ok {
		return
	}
	if h.ai.GetAvailableProvider() == nil {
		errors.ServiceUnavailable(c, "no AI provider is configured")
		return
	}

	session := h.insights.ForCustomer(customer)
	started := h.insights.RequestAnalysis(session, customer)

	c.JSON(http.StatusAccepted, gin.H{
		"started":  started,
		"insights": h.buildInsightsResponse(session),
	})
}

// RecommendAction handles POST /api/customers/:id/recommendations
func (h *Handler) RecommendAction(c *gin.Context) {
	customer, ok := h.loadCustomer(c)
	if !ok {
		return
	}
	if h.ai.GetAvailableProvider() == nil {
		errors.ServiceUnavailable(c, "no AI provider is configured")
		return
	}

	session := h.insights.ForCustomer(customer)
	started := h.insights.RequestRecommendation(session, customer)

	c.JSON(http.StatusAccepted, gin.H{
		"started":  started,
		"insights": h.buildInsightsResponse(session),
	})
}

// ListRecommendations handles GET /api/customers/:id/recommendations
func (h *Handler) ListRecommendations(c *gin.Context) {
	customer, ok := h.loadCustomer(c)
	if !ok {
		return
	}

	params := utils.ParsePagination(c)
	skip := int64((params.Page - 1) * params.Limit)

	recommendations, total, err := h.repo.ListRecommendationsPage(c.Request.Context(), customer.ID, int64(params.Limit), skip)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, utils.PaginatedResponse{
		Data:  recommendations,
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Count: len(recommendations),
	})
}

func (h *Handler) buildInsightsResponse(session *insight.Session) insightsResponse {
	response := insightsResponse{SessionSnapshot: session.Snapshot()}
	if response.Interactions.Value != nil {
		response.PositiveSentimentRatio = analytics.PositiveSentimentRatio(*response.Interactions.Value)
	}
	return response
}
