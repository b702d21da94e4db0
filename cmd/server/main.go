package main

import (
	"context" // context package is needed for Redis operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"minivenmo/internal/api"    // Custom package for API handlers
	"minivenmo/internal/config" // Custom package for configuration
	"minivenmo/internal/db"     // Custom package for the ledger journal
	"minivenmo/internal/domain" // Custom package for the payment core
	"minivenmo/internal/utils"  // Custom package for caching
	"minivenmo/internal/venmo"  // Custom package for the application facade
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	logrus.SetLevel(cfg.LogLevel)
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine readable logs in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Open the in-memory ledger
	ledger, err := db.Open(cfg.DBName)
	if err != nil {
		logrus.Fatalf("failed to open ledger: %v", err) // Fatal error if the ledger cannot be created
	}
	journal := db.NewJournal(ledger)

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
	}
	cache := utils.NewCache(redisClient, utils.DefaultTTL)

	// Application facade with the configured balance policy
	v := venmo.New(
		venmo.WithResolver(domain.NewResolver(cfg.BalancePolicy, domain.NoopCharger{})),
		venmo.WithJournal(journal),
		venmo.WithLogger(logrus.StandardLogger()),
	)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(v, journal, cache, logrus.StandardLogger()) // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Log server start
	logrus.WithField("balance_policy", cfg.BalancePolicy.String()).Info("Server running on " + cfg.AppPort)
	// Start the server on port cfg.AppPort
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
