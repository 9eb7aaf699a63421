package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexabank/crm-insights/pkg/errors"
	"github.com/nexabank/crm-insights/pkg/metrics"
	"github.com/nexabank/crm-insights/pkg/middleware"
)

type sentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// TestSentiment handles POST /api/sentiment/test, scoring a piece of text
// without recording anything. Useful for tuning interaction summaries.
func (h *Handler) TestSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	text := middleware.SanitizeString(req.Text)
	score := h.ai.ScoreSentiment(c.Request.Context(), text)
	metrics.RecordRequest("/api/sentiment/test", true, time.Since(start))

	label := "neutral"
	switch {
	case score > 0:
		label = "positive"
	case score < 0:
		label = "negative"
	}

	c.JSON(http.StatusOK, gin.H{
		"sentiment_score": score,
		"label":           label,
	})
}
