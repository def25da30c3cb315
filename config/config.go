package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration. Every provider key is
// optional: a missing key degrades that one capability to a mock or
// fallback response instead of failing startup.
type Config struct {
	ServerPort  string
	DatabaseURL string
	JWTSecret   string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Judgment search
	SearchAPIURL   string
	SearchAPIToken string

	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // when true, emails are logged instead of sent

	// Document storage
	StorageType      string // "local" or "s3"
	StorageLocalPath string
	S3Bucket         string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string
}

// Load reads configuration from the environment, preferring a .env file
// when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:  getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		SearchAPIURL:   getEnv("SEARCH_API_URL", "https://api.indiankanoon.org/search/"),
		SearchAPIToken: getEnv("SEARCH_API_TOKEN", ""),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@lexassist.app"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "LexAssist"),
		EmailTestMode: getEnvBool("EMAIL_TEST_MODE", false),

		StorageType:      getEnv("STORAGE_TYPE", "local"),
		StorageLocalPath: getEnv("STORAGE_LOCAL_PATH", "./storage/files"),
		S3Bucket:         getEnv("AWS_S3_BUCKET", ""),
		S3Region:         getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
