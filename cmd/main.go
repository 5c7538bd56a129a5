package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plaza-ads/internal/adapter/analytics"
	"plaza-ads/internal/adapter/auth"
	httpadapter "plaza-ads/internal/adapter/http"
	"plaza-ads/internal/adapter/postgres"
	"plaza-ads/internal/adapter/usecase"
	"plaza-ads/internal/config"
	"plaza-ads/internal/db"
)

// main is the entry point of the plaza-ads service. It loads configuration,
// optionally runs database migrations and seeding, initializes the database
// pool, the analytics sink and the repositories, then starts the HTTP
// server. On receiving a termination signal it gracefully shuts down the
// server and flushes the sink.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout))

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	// The sink stays a silent no-op unless explicitly enabled.
	sink := analytics.NewClient(logger)
	if cfg.Analytics.Enabled {
		sink.Init(cfg.Analytics)
	}
	defer sink.Close()

	repo := postgres.NewTrackingRepository(pool)
	svc := usecase.NewPlacementUseCase(repo, sink, logger)
	identity := auth.NewJWTProvider(cfg.Auth.JWTSecret)

	handler := httpadapter.NewHandler(svc, identity, logger, cfg.HTTP.PublicURL)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: identity.Middleware(handler.Router()),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
