// Package config loads and validates service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// History backends.
const (
	BackendMemory   = "memory"
	BackendSqlite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all values the server needs at startup.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// HistoryBackend selects where computed meeting points are remembered.
	HistoryBackend string
	HistoryLimit   int
	DBPath         string
	DatabaseURL    string
	RedisAddr      string

	GeocoderBaseURL   string
	GeocoderUserAgent string

	CORSOrigins []string

	// Kafka publishing is disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Export archiving is disabled when MinioEndpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadDotenv loads a .env file into the environment when one exists.
// It reports whether a file was found.
func LoadDotenv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables.
// Returns an error naming every required variable that is missing or invalid.
func Load() (Config, error) {
	cfg := Config{
		Port:              Get("PORT", "8080"),
		LogLevel:          Get("LOG_LEVEL", "info"),
		LogFormat:         Get("LOG_FORMAT", "json"),
		HistoryBackend:    strings.ToLower(Get("HISTORY_BACKEND", BackendSqlite)),
		DBPath:            Get("DB_PATH", "data/app.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		GeocoderBaseURL:   Get("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: Get("GEOCODER_USER_AGENT", "meeting-point-service/1.0"),
		CORSOrigins:       splitCSV(Get("CORS_ORIGINS", "*")),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        Get("KAFKA_TOPIC", "meeting-points"),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       Get("MINIO_BUCKET", "meeting-point-exports"),
		MinioUseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
	}

	var problems []string

	limit, err := strconv.Atoi(Get("HISTORY_LIMIT", "10"))
	if err != nil || limit < 1 {
		problems = append(problems, "HISTORY_LIMIT")
	}
	cfg.HistoryLimit = limit

	switch cfg.HistoryBackend {
	case BackendMemory, BackendSqlite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR")
		}
	default:
		problems = append(problems, "HISTORY_BACKEND")
	}

	if cfg.MinioEndpoint != "" {
		if cfg.MinioAccessKey == "" {
			problems = append(problems, "MINIO_ACCESS_KEY")
		}
		if cfg.MinioSecretKey == "" {
			problems = append(problems, "MINIO_SECRET_KEY")
		}
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config: missing or invalid environment variables: %s", strings.Join(problems, ", "))
	}

	return cfg, nil
}

// Get returns the value of the environment variable named by key,
// or fallback if it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into trimmed, non-empty parts.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
