package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI providers
const (
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"
)

// DefaultRenderTokenSecret is only suitable for local development.
const DefaultRenderTokenSecret = "your-secret-key-change-in-production"

type Config struct {
	Port            string
	FrontendURL     string
	MongoDBURI      string
	MongoDBDatabase string
	LogDir          string
	LogLevel        string

	RenderTokenSecret string
	RenderTokenTTL    time.Duration

	AIProvider            string
	AzureOpenAIAPIKey     string
	AzureOpenAIEndpoint   string
	AzureOpenAIDeployment string
	AzureOpenAIAPIVersion string
	GeminiAPIKey          string
	GeminiModel           string
	AITimeout             time.Duration
	AIRateLimitPerMinute  int
}

func Load() *Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		MongoDBURI:      getEnv("MONGODB_URI", ""),
		MongoDBDatabase: getEnv("MONGODB_DATABASE", "aiformbuilder"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		RenderTokenSecret: getEnv("RENDER_TOKEN_SECRET", DefaultRenderTokenSecret),
		RenderTokenTTL:    getDuration("RENDER_TOKEN_TTL", 24*time.Hour),

		AIProvider:            strings.ToLower(getEnv("AI_PROVIDER", ProviderAzure)),
		AzureOpenAIAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
		AzureOpenAIAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2025-01-01-preview"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITimeout:             getDuration("AI_TIMEOUT", 60*time.Second),
		AIRateLimitPerMinute:  getInt("AI_RATE_LIMIT_PER_MINUTE", 10),
	}
}

// AIConfigured reports whether the selected provider has everything it
// needs to make a call.
func (c *Config) AIConfigured() bool {
	switch c.AIProvider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderAzure, "":
		return c.AzureOpenAIAPIKey != "" && c.AzureOpenAIEndpoint != "" &&
			c.AzureOpenAIDeployment != "" && c.AzureOpenAIAPIVersion != ""
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
