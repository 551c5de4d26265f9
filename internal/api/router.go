// Package api wires the HTTP routes of the ad service.
package api

import (
	"geo_ads/internal/auth"       // Credential checks
	"geo_ads/internal/metrics"    // Prometheus collectors
	"geo_ads/internal/middleware" // Auth and logging middleware
	"geo_ads/internal/service"    // Store operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the routes need
type Deps struct {
	Service        *service.Service
	Auth           *auth.Authenticator
	Metrics        *metrics.Metrics
	Sessions       middleware.SessionOptions
	TrustedProxies []string
}

// NewRouter builds the gin engine with every route and its auth requirement
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), d.Metrics.Middleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}

	// Public API (protected by API key)
	r.POST("/get_ads_location", middleware.APIKeyMiddleware(d.Auth, d.Metrics), GetAdsLocationHandler(d.Service, d.Metrics))

	// Operational endpoints
	r.GET("/health", HealthHandler(d.Service))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// Admin routes (Basic auth or session, admin only)
	admin := r.Group("/")
	admin.Use(middleware.AdminAuthMiddleware(d.Auth, d.Sessions))
	admin.GET("/", IndexHandler())                            // Landing page
	admin.GET("/new_ad", NewAdFormHandler(d.Service))         // New ad form
	admin.POST("/new_ad", CreateAdHandler(d.Service))         // Create ad
	admin.GET("/new_client", NewClientFormHandler())          // New client form
	admin.POST("/new_client", CreateClientHandler(d.Service)) // Create client
	admin.GET("/new_user", NewUserFormHandler())              // New user form
	admin.POST("/new_user", CreateUserHandler(d.Service))     // Create user
	admin.GET("/list_ads", ListAdsHandler(d.Service))         // List ads
	admin.GET("/list_clients", ListClientsHandler(d.Service)) // List clients
	admin.GET("/list_users", ListUsersHandler(d.Service))     // List users

	return r, nil
}
