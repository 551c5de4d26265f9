package api

import (
	"net/http"

	"geo_ads/internal/service"

	"github.com/gin-gonic/gin"
)

// adminPages are linked from the landing page
var adminPages = []string{"/new_ad", "/new_client", "/new_user", "/list_ads", "/list_clients", "/list_users"}

// IndexHandler serves the admin landing page
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pages": adminPages})
	}
}

// HealthHandler reports whether the store answers
func HealthHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
