package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	// TokenExpiry of 0 issues tokens without an expiration claim.
	TokenExpiry time.Duration
	LogLevel    string
}

// LoadConfig reads configuration from a .env file (when present) and the
// process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on process environment")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB", "knowledge_network"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("TOKEN_EXPIRY"); raw != "" {
		expiry, err := time.ParseDuration(raw)
		if err != nil {
			logrus.WithField("TOKEN_EXPIRY", raw).Warn("Invalid token expiry, tokens will not expire")
		} else {
			cfg.TokenExpiry = expiry
		}
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
