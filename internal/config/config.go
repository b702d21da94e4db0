package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // For log levels

	"minivenmo/internal/domain" // For balance policies
)

// Config holds the application configuration
type Config struct {
	AppPort       string               // Application port
	DBName        string               // Name of the in-memory ledger database
	RedisAddr     string               // Redis server address, empty disables caching
	RedisPass     string               // Redis password
	RedisDB       int                  // Redis database number
	IsProd        bool                 // Is production environment
	BalancePolicy domain.BalancePolicy // When payments may use the balance
	LogLevel      logrus.Level         // Minimum log level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	policy, err := domain.ParseBalancePolicy(os.Getenv("BALANCE_POLICY")) // Balance policy
	if err != nil {
		return nil, err
	}
	level := logrus.InfoLevel // Default log level
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if level, err = logrus.ParseLevel(v); err != nil {
			return nil, err
		}
	}
	return &Config{
		AppPort:       getenv("APP_PORT", "8080"),     // Application port
		DBName:        getenv("DB_NAME", "minivenmo"), // Ledger name
		RedisAddr:     os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:       redisDB,                        // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
		BalancePolicy: policy,                         // Balance policy
		LogLevel:      level,                          // Log level
	}, nil
}

// getenv returns the variable or def when it is unset or empty
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
