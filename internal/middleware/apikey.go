package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"geo_ads/internal/auth"    // API key checks
	"geo_ads/internal/domain"  // Error taxonomy
	"geo_ads/internal/metrics" // Query outcome counters

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// APIKeyMiddleware admits any user whose API key follows "Bearer " in the
// Authentication header. Failures answer 200 with a JSON error.
func APIKeyMiddleware(a *auth.Authenticator, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader(auth.HeaderName)) // Extract the API key
		if !ok {
			m.ObserveQuery(metrics.ResultInvalidAuth, 0)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": "Invalid authentication"})
			return
		}
		userID, err := a.ValidKey(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAuth) {
				m.ObserveQuery(metrics.ResultInvalidAuth, 0)
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": "Invalid authentication"})
				return
			}
			logrus.WithError(err).Error("API key lookup failed")
			m.ObserveQuery(metrics.ResultError, 0)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": "An error happened"})
			return
		}
		c.Set("userID", userID) // Store userID in context
		c.Next()                // Proceed to the next handler
	}
}
