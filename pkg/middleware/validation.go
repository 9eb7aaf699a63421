package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexabank/crm-insights/pkg/errors"
)

// ValidateIDParam validates that an ID parameter is a valid positive integer
func ValidateIDParam(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			errors.BadRequest(c, paramName+" parameter is required")
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			errors.BadRequest(c, "invalid "+paramName+" parameter: must be a positive integer")
			c.Abort()
			return
		}

		c.Set(paramName+"_int", id)
		c.Next()
	}
}

// SanitizeString removes null bytes and trims whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
