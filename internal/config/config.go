package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port    string
	GinMode string

	// Durable storage
	StorageBackend string // sqlite | redis | memory
	SQLitePath     string

	// Redis (rate limiting, optional storage backend)
	RedisURL string

	// MinIO (uploaded resource files)
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Meilisearch
	MeiliURL    string
	MeiliAPIKey string

	// Tika
	TikaURL string

	// AI collaborator
	AIBaseURL   string
	AIModel     string
	AICharLimit int

	// AI endpoint rate limiting
	AIRateLimit  int
	AIRateWindow int // seconds

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "studyscribe.db"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "resources"),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		MeiliURL:    getEnv("MEILI_URL", "http://localhost:7700"),
		MeiliAPIKey: getEnv("MEILI_API_KEY", "dev_master_key_change_in_production"),

		TikaURL: getEnv("TIKA_URL", "http://localhost:9998"),

		AIBaseURL:   getEnv("AI_BASE_URL", "https://api.openai.com"),
		AIModel:     getEnv("AI_MODEL", "gpt-3.5-turbo"),
		AICharLimit: getEnvInt("AI_CHAR_LIMIT", 8000),

		AIRateLimit:  getEnvInt("AI_RATE_LIMIT", 30),
		AIRateWindow: getEnvInt("AI_RATE_WINDOW", 3600),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
