package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomsense/roomrank/internal/api"
	"github.com/roomsense/roomrank/internal/cache"
	"github.com/roomsense/roomrank/internal/config"
	"github.com/roomsense/roomrank/internal/metrics"
	"github.com/roomsense/roomrank/internal/ranking"
	"github.com/roomsense/roomrank/internal/store"
	"github.com/roomsense/roomrank/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Cache: redis when configured, in-process otherwise
	var c cache.Cache
	obs := metrics.CacheObserver{}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisDB, cfg.CacheTTL(), obs)
		if err != nil {
			logger.Warn("failed to connect to redis, using in-process cache", "error", err)
			c = cache.NewMemory(cfg.CacheTTL(), obs)
		} else {
			c = rc
			defer rc.Close()
			logger.Info("connected to redis", "addr", cfg.Cache.RedisAddr)
		}
	} else {
		c = cache.NewMemory(cfg.CacheTTL(), obs)
	}

	// NATS (optional)
	var busClient telemetry.Client
	if cfg.NATS.Enabled {
		nc, err := telemetry.NewNATSClient(ctx, cfg.NATS.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			busClient = nc
			defer nc.Close()
			logger.Info("connected to nats")

			ingestor := telemetry.NewIngestor(nc, db, logger)
			if err := ingestor.Start(); err != nil {
				logger.Warn("failed to subscribe to sensor events", "error", err)
			}
		}
	}

	// Ranker
	ranker := ranking.New(db, c, ranking.Config{
		SensorWindow:     cfg.Ranking.SensorWindow,
		DefaultDuration:  time.Duration(cfg.Ranking.DefaultDuration) * time.Minute,
		ConsistencyLimit: cfg.Ranking.ConsistencyLimit,
	}, logger)

	// API server
	router := api.NewRouter(db, busClient, ranker, api.Config{
		AdminToken:      cfg.Server.AdminToken,
		DefaultDuration: time.Duration(cfg.Ranking.DefaultDuration) * time.Minute,
	}, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
