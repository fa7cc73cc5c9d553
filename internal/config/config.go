package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	CORSOrigins string
	BodyLimitMB int

	DataDir        string
	StorageBackend string
	DatabaseURL    string
	RedisURL       string

	YouTubeAPIKey  string
	YouTubeAPIBase string
	GeminiAPIKey   string
	GeminiModel    string

	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string
	AuthDisplayName  string
	AuditUser        string

	// ResyncIntervalMin enables the background re-sync of linked creators
	// when positive.
	ResyncIntervalMin int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 10),

		DataDir:        getEnv("DATA_DIR", "data"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageFile),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),

		YouTubeAPIKey:  getEnv("YOUTUBE_API_KEY", ""),
		YouTubeAPIBase: getEnv("YOUTUBE_API_BASE", "https://www.googleapis.com/youtube/v3"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		AuthUsername:     getEnv("AUTH_USERNAME", "Jakirhosen150"),
		AuthPassword:     getEnv("AUTH_PASSWORD", "525477JAKIR@"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		AuthDisplayName:  getEnv("AUTH_DISPLAY_NAME", "Jakir Hosen"),
		AuditUser:        getEnv("AUDIT_USER", "Admin"),

		ResyncIntervalMin: getEnvInt("RESYNC_INTERVAL_MINUTES", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
