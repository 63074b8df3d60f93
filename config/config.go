package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the denuncias service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port          string
	PublicBaseURL string
	LogLevel      string

	// Photo storage configuration
	UploadDir     string
	MaxPhotoBytes int64

	// Auth configuration
	JWTSecret    string
	TokenTTL     time.Duration
	AuthRequired bool
	AuthUser     string
	AuthPassword string

	// Email notification configuration
	SendGridAPIKey string
	EmailFromName  string
	EmailFromAddr  string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "denuncias"),

		// Server defaults
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		// Photo storage defaults
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxPhotoBytes: int64(getIntEnv("MAX_PHOTO_BYTES", 10*1024*1024)),

		// Auth defaults. JWT_SECRET has no fallback on purpose: the service
		// refuses to start token-gated without an explicit secret.
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     time.Duration(getIntEnv("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		AuthRequired: getBoolEnv("AUTH_REQUIRED", false),
		AuthUser:     getEnv("AUTH_USER", "admin"),
		AuthPassword: getEnv("AUTH_PASSWORD", ""),

		// Email defaults
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Denuncias"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDR", "no-reply@denuncias.local"),
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
