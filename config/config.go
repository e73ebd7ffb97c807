package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		// a missing .env is fine, the process environment still applies
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Storage: "postgres" (default) or "memory"
	STORAGE_DRIVER string
	// Database Configuration
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Redis Configuration (optional, falls back to an in-process cache)
	REDIS_URL string
	CACHE_TTL time.Duration
	// HTTP
	ALLOWED_ORIGINS     string
	BODY_LIMIT_BYTES    int
	RATE_LIMIT_REQUESTS int
	IDEMPOTENCY_TTL     time.Duration
	// Scheduled jobs
	CRON_ENABLED bool
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 4000
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	dbSSLMode := os.Getenv("DB_SSL_MODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	storageDriver := os.Getenv("STORAGE_DRIVER")
	if storageDriver == "" {
		storageDriver = "postgres"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:         os.Getenv("GO_ENV"),
		PORT:           port,
		STORAGE_DRIVER: storageDriver,
		DB_USER_NAME:   os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		DB_HOST:        dbHost,
		DB_PORT:        dbPort,
		DB_SSL_MODE:    dbSSLMode,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		CACHE_TTL: time.Duration(intFromEnv("CACHE_TTL_SECONDS", 300)) * time.Second,
		// HTTP
		ALLOWED_ORIGINS:     allowedOrigins,
		BODY_LIMIT_BYTES:    intFromEnv("BODY_LIMIT_MB", 15) * 1024 * 1024,
		RATE_LIMIT_REQUESTS: intFromEnv("RATE_LIMIT_REQUESTS", 0), // 0 disables the limiter
		IDEMPOTENCY_TTL:     time.Duration(intFromEnv("IDEMPOTENCY_TTL_SECONDS", 600)) * time.Second,
		// Cron
		CRON_ENABLED: os.Getenv("CRON_ENABLED") != "false", // Default to enabled
	}

	return envVariables, nil
}

func intFromEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
