package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Session lifetime

	"geo_ads/internal/auth"   // Credential checks
	"geo_ads/internal/domain" // Error taxonomy
	"geo_ads/internal/utils"  // Session tokens

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// SessionCookie holds the admin session token
const SessionCookie = "session"

// basicChallenge is sent with every 401 from an admin route
const basicChallenge = `Basic realm="Authentication Required"`

// SessionOptions configures admin session cookies. An empty Secret disables them.
type SessionOptions struct {
	Secret string        // HS256 signing key
	TTL    time.Duration // Cookie and token lifetime
	Secure bool          // Send the cookie over HTTPS only
}

// AdminAuthMiddleware admits admins by session cookie or HTTP Basic credentials.
// Session holders are re-checked against the database on every request.
func AdminAuthMiddleware(a *auth.Authenticator, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Try the session cookie first
		if opts.Secret != "" {
			if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
				if claims, err := utils.ParseSession(token, opts.Secret); err == nil {
					if user, err := a.AdminByID(ctx, claims.UserID); err == nil {
						c.Set("userID", user.ID) // Store userID in context
						c.Next()
						return
					}
				}
			}
		}

		username, password, ok := c.Request.BasicAuth() // Parse Authorization: Basic
		if !ok {
			unauthorized(c)
			return
		}
		user, err := a.ValidateAdmin(ctx, username, password)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidAuth) {
				logrus.WithError(err).Error("Admin authentication failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An error happened"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username":  username,     // Attempted username
				"client_ip": c.ClientIP(), // Caller address
				"path":      c.Request.URL.Path,
			}).Warn("Rejected admin credentials")
			unauthorized(c)
			return
		}

		if opts.Secret != "" {
			token, err := utils.GenerateSession(user.ID, opts.Secret, opts.TTL)
			if err != nil {
				logrus.WithError(err).Error("Failed to issue admin session")
			} else {
				c.SetSameSite(http.SameSiteStrictMode)
				c.SetCookie(SessionCookie, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
			}
		}
		c.Set("userID", user.ID) // Store userID in context
		c.Next()                 // Proceed to the next handler
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", basicChallenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized Access"})
}
