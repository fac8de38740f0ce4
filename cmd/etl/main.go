package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hkculture/venue-etl-service/internal/adapter/feed"
	httpadapter "github.com/hkculture/venue-etl-service/internal/adapter/http"
	"github.com/hkculture/venue-etl-service/internal/adapter/postgres"
	"github.com/hkculture/venue-etl-service/internal/config"
	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/observability"
	"github.com/hkculture/venue-etl-service/internal/pipeline"
	"github.com/hkculture/venue-etl-service/internal/venuequery"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	var resolver domain.AreaResolver
	if cfg.AreaStrategy == config.StrategyName {
		resolver = domain.NameResolver{}
	} else {
		resolver = domain.CoordinateResolver{}
	}
	logger.Info("area resolver selected", "strategy", cfg.AreaStrategy)

	feedClient := feed.NewClient(cfg, metrics, logger)
	ingestor := pipeline.New(feedClient, store, resolver, logger, metrics, cfg.MinEvents, cfg.TopVenues)
	querier := venuequery.New(store, cfg.ReferenceLat, cfg.ReferenceLng, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, ingestor, querier, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// One-shot seed at startup. A populated store skips; a failed run leaves
	// the store empty and the service serving whatever is already there.
	go func() {
		result, err := ingestor.Run(ctx)
		if err != nil {
			logger.Error("ingestion failed", "error", err)
			return
		}
		logger.Info("ingestion finished", "skipped", result.Skipped, "message", result.Message)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
