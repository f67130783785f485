package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret      string
	GoogleClientID string
	ServerPort     string
	FrontendURL    string

	MPAccessToken  string
	WebhookBaseURL string

	LLMAPIKey  string
	LLMAPIURL  string
	LLMModel   string
	LLMRetries int

	ExamsBasePath string

	FreeWorkplaceLimit int
	FreeQuizLimit      int
	FreeQuestionLimit  int

	LogLevel string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "prepwise"),

		JWTSecret:      getEnv("SECRET_KEY", "super-secret-key-change-me"),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),

		MPAccessToken:  getEnv("MP_ACCESS_TOKEN", ""),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),

		LLMAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		LLMAPIURL:  getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1"),
		LLMModel:   getEnv("OPENROUTER_MODEL", "google/gemma-3-27b-it:free"),
		LLMRetries: getEnvInt("OPENROUTER_RETRIES", 2),

		ExamsBasePath: getEnv("EXAMS_BASE_PATH", "./data/exams"),

		FreeWorkplaceLimit: getEnvInt("FREE_WORKPLACE_LIMIT", 1),
		FreeQuizLimit:      getEnvInt("FREE_QUIZ_LIMIT", 1),
		FreeQuestionLimit:  getEnvInt("FREE_QUESTION_LIMIT", 20),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
