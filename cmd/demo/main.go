package main

import (
	"context" // Context for the journal
	"os"      // Standard output

	"github.com/sirupsen/logrus" // Logrus for structured logging

	"minivenmo/internal/config" // Custom package for configuration
	"minivenmo/internal/domain" // Custom package for the payment core
	"minivenmo/internal/venmo"  // Custom package for the application facade
)

// Main entry point for the scripted demo
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetOutput(os.Stderr) // Keep stdout for the feed
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	v := venmo.New(venmo.WithResolver(domain.NewResolver(cfg.BalancePolicy, nil)))
	if err := v.Run(context.Background(), os.Stdout); err != nil {
		logrus.Fatalf("demo failed: %v", err)
	}
}
