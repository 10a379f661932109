package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string

	AIProvider   string // "gemini" or "groq", fixed at startup
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqEndpoint string
	GroqModel    string

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string

	AdminPassphrase     string
	AdminPassphraseHash string
	JWTSecret           string

	Port string
}

// LoadConfig loads the environment variables and returns the config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),

		AIProvider:   getEnv("AI_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GroqEndpoint: getEnv("GROQ_ENDPOINT", "https://api.groq.com/openai/v1"),
		GroqModel:    getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", ""),

		AdminPassphrase:     getEnv("ADMIN_PASSPHRASE", ""),
		AdminPassphraseHash: getEnv("ADMIN_PASSPHRASE_HASH", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),

		Port: getEnv("PORT", "8080"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.AIProvider != "gemini" && cfg.AIProvider != "groq" {
		log.Fatalf("AI_PROVIDER must be gemini or groq, got %q", cfg.AIProvider)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	if cfg.AdminPassphrase == "" && cfg.AdminPassphraseHash == "" {
		log.Fatal("ADMIN_PASSPHRASE or ADMIN_PASSPHRASE_HASH must be set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
