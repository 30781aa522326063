package main

import (
	"context"
	"errors"
	"fmt"
	"meeting-point-service/internal/adapters/cache"
	"meeting-point-service/internal/adapters/events"
	"meeting-point-service/internal/adapters/geocoding"
	"meeting-point-service/internal/adapters/repositories"
	"meeting-point-service/internal/adapters/storage"
	"meeting-point-service/internal/api"
	"meeting-point-service/internal/config"
	"meeting-point-service/internal/platform/db"
	"meeting-point-service/internal/platform/logging"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	foundDotenv := config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(os.Stderr, "info", "json")
		bootLogger.Fatal().Err(err).Msg("configuration error")
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !foundDotenv {
		logger.Debug().Msg("no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx := logger.WithContext(context.Background())

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn().Err(err).Msg("close failed")
			}
		}
	}()

	history, geocodeCache, closeStore, err := openHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)
	logger.Info().Str("backend", cfg.HistoryBackend).Msg("history store ready")

	geocoder, err := geocoding.NewNominatimGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, geocodeCache)
	if err != nil {
		return err
	}

	var publisher ports.EventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		closers = append(closers, kp.Close)
		publisher = kp
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka publishing enabled")
	}

	exports := services.NewExportService(nil)
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioExportStore(storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return err
		}
		exports = services.NewExportService(store)
		logger.Info().Str("endpoint", cfg.MinioEndpoint).Str("bucket", cfg.MinioBucket).Msg("export archiving enabled")
	}

	router := api.NewRouter(api.Deps{
		Finder:      services.NewMeetingPointFinder(history, publisher, cfg.HistoryLimit),
		History:     services.NewHistoryService(history, cfg.HistoryLimit),
		Exports:     exports,
		Geocoder:    geocoder,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Write timeout leaves room for several retried geocoder calls.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openHistoryStore opens the configured history backend. SQL backends also
// provide the persistent geocode cache; the others leave it nil.
func openHistoryStore(
	ctx context.Context,
	cfg config.Config,
) (ports.HistoryRepository, ports.GeocodeCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.HistoryBackend {
	case config.BackendMemory:
		return repositories.NewMemoryHistoryRepository(), nil, noop, nil

	case config.BackendSqlite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, nil, fmt.Errorf("create sqlite dir %q: %w", dir, err)
			}
		}
		sqlDB, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, nil, err
		}
		return repositories.NewSqliteHistoryRepository(sqlDB), cache.NewSqliteGeocodeCache(sqlDB), sqlDB.Close, nil

	case config.BackendPostgres:
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.MigrateUp(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, nil, err
		}
		return repositories.NewSQLHistoryRepository(sqlDB), cache.NewSQLGeocodeCache(sqlDB), sqlDB.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return repositories.NewRedisHistoryRepository(client), nil, client.Close, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
}

