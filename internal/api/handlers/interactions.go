package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/errors"
	"github.com/nexabank/crm-insights/pkg/middleware"
)

type addInteractionRequest struct {
	InteractionType string `json:"interaction_type" binding:"required"`
	Summary         string `json:"summary" binding:"required"`
}

// ListInteractions handles GET /api/customers/:id/interactions
func (h *Handler) ListInteractions(c *gin.Context) {
	customerID := c.GetInt64("id_int")

	if _, err := h.repo.GetCustomer(c.Request.Context(), customerID); err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return
	} else if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	interactions, err := h.repo.ListInteractions(c.Request.Context(), customerID)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// AddInteraction handles POST /api/customers/:id/interactions. The sentiment
// score is assigned here, by the AI providers when available and by keyword
// matching otherwise.
func (h *Handler) AddInteraction(c *gin.Context) {
	customerID := c.GetInt64("id_int")

	if _, err := h.repo.GetCustomer(c.Request.Context(), customerID); err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return
	} else if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	var req addInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if !validInteractionType(req.InteractionType) {
		errors.BadRequest(c, "interaction_type must be one of: Phone Call, Email, Branch Visit, Chat")
		return
	}

	summary := middleware.SanitizeString(req.Summary)
	sentiment := h.ai.ScoreSentiment(c.Request.Context(), summary)

	interaction := &store.Interaction{
		CustomerID:      customerID,
		InteractionType: req.InteractionType,
		Summary:         summary,
		SentimentScore:  sentiment,
	}
	if err := h.repo.AddInteraction(c.Request.Context(), interaction); err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	// Keep the live insight session in step with the new record.
	if session, ok := h.insights.SessionFor(customerID); ok {
		h.insights.RefreshInteractions(session)
	}

	h.logger.Info("interaction recorded",
		zap.Int64("customer_id", customerID),
		zap.String("type", interaction.InteractionType),
		zap.Float64("sentiment", interaction.SentimentScore),
	)
	c.JSON(http.StatusCreated, interaction)
}

func validInteractionType(interactionType string) bool {
	for _, t := range store.InteractionTypes {
		if t == interactionType {
			return true
		}
	}
	return false
}
