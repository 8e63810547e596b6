package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/ratelimit"
)

// RateLimitMiddleware gates a route group through the shared fixed-window
// limiter, keyed by authenticated user when available and client IP
// otherwise. A nil limiter (no Redis configured) disables limiting.
func RateLimitMiddleware(limiter *ratelimit.FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, exists := c.Get(UserIDKey); exists {
			if s, ok := userID.(string); ok && s != "" {
				key = s
			}
		}

		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Envelope{
				Success: false,
				Error:   "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
