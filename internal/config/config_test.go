package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "HISTORY_BACKEND", "HISTORY_LIMIT", "DB_PATH",
	"DATABASE_URL", "REDIS_ADDR", "GEOCODER_BASE_URL", "GEOCODER_USER_AGENT",
	"CORS_ORIGINS", "KAFKA_BROKERS", "KAFKA_TOPIC", "MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, BackendSqlite, cfg.HistoryBackend)
	require.Equal(t, 10, cfg.HistoryLimit)
	require.Equal(t, "data/app.db", cfg.DBPath)
	require.Equal(t, "https://nominatim.openstreetmap.org", cfg.GeocoderBaseURL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, "meeting-points", cfg.KafkaTopic)
	require.Empty(t, cfg.MinioEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HISTORY_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HISTORY_LIMIT", "25")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "key")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, BackendRedis, cfg.HistoryBackend)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 25, cfg.HistoryLimit)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.MinioUseSSL)
}

func TestLoadMissingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_BACKEND", "postgres")
	t.Setenv("HISTORY_LIMIT", "0")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")

	_, err := Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "DATABASE_URL")
	require.ErrorContains(t, err, "HISTORY_LIMIT")
	require.ErrorContains(t, err, "MINIO_ACCESS_KEY")
	require.ErrorContains(t, err, "MINIO_SECRET_KEY")
}

func TestLoadUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_BACKEND", "cassandra")

	_, err := Load()

	require.ErrorContains(t, err, "HISTORY_BACKEND")
}
