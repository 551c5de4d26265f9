package main

import (
	"context"  // context package is needed for Redis operations and shutdown
	"errors"   // Server close detection
	"net/http" // HTTP server
	"time"     // Shutdown timeout

	"geo_ads/internal/api"        // Custom package for API handlers
	"geo_ads/internal/auth"       // Credential checks
	"geo_ads/internal/config"     // Custom package for configuration
	"geo_ads/internal/db"         // Database connection and migrations
	"geo_ads/internal/graceful"   // Signal-aware context
	"geo_ads/internal/metrics"    // Prometheus collectors
	"geo_ads/internal/middleware" // Custom package for middleware
	"geo_ads/internal/service"    // Store operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// shutdownTimeout bounds the wait for in-flight requests on exit
const shutdownTimeout = 10 * time.Second

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database and make sure the schema exists
	gdb, err := db.Connect(cfg.DSN(), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})

		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Service: service.New(gdb, cfg.PasswordCost),
		Auth:    auth.New(gdb, redisClient, cfg.KeyCacheTTL),
		Metrics: metrics.New(),
		Sessions: middleware.SessionOptions{
			Secret: cfg.SessionSecret, // Empty disables session cookies
			TTL:    cfg.SessionTTL,    // Cookie and token lifetime
			Secure: cfg.IsProd,        // HTTPS only in production
		},
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("server stopped: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	if err := db.Close(gdb); err != nil {
		logrus.Errorf("close DB: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logrus.Errorf("close Redis: %v", err)
		}
	}
	logrus.Info("Server stopped")
}
