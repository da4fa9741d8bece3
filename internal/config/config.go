package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Wearable WearableConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini    string
	MemoryTopicName string // Async memory-writer topic
}

type AIConfig struct {
	EmbeddingProvider      string // "gemini" or "ollama"
	OllamaBaseURL          string
	OllamaEmbeddingModel   string
	LLMProvider            string // "ollama", "gemini"
	LLMModel               string // e.g. "llama3", "gemini-1.5-flash"
	OrchestrationTimeoutMs int    // whole fan-out ceiling
	DailyChatLimit         int    // per-user messages per day
}

type WearableConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MindMate"),
		},
		Keys: APIKeys{
			GoogleGemini:    getEnv("GOOGLE_GEMINI_API_KEY", ""),
			MemoryTopicName: getEnv("MEMORY_WRITE_TOPIC_NAME", "MEMORY_WRITE"),
		},
		Ai: AIConfig{
			EmbeddingProvider:      getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:          getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:            getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:               getEnv("LLM_MODEL", "llama3"),
			OrchestrationTimeoutMs: getEnvAsInt("ORCHESTRATION_TIMEOUT_MS", 8000),
			DailyChatLimit:         getEnvAsInt("DAILY_CHAT_LIMIT", 100),
		},
		Wearable: WearableConfig{
			BaseURL:      getEnv("FITBIT_API_BASE_URL", "https://api.fitbit.com"),
			ClientID:     getEnv("FITBIT_CLIENT_ID", ""),
			ClientSecret: getEnv("FITBIT_CLIENT_SECRET", ""),
			TokenURL:     getEnv("FITBIT_TOKEN_URL", "https://api.fitbit.com/oauth2/token"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
