// Package main is the entry point for the ELD planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // DISPLAY_TIMEZONE must resolve on minimal images

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/eld-planner/backend/internal/cache"
	"github.com/pkordes/eld-planner/backend/internal/config"
	"github.com/pkordes/eld-planner/backend/internal/handler"
	"github.com/pkordes/eld-planner/backend/internal/middleware"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/repo"
	"github.com/pkordes/eld-planner/backend/internal/service"
	"github.com/pkordes/eld-planner/backend/internal/session"
	"github.com/pkordes/eld-planner/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Planner ----------------------------------------------------------
	client, err := planner.New(planner.Options{
		BaseURL:  cfg.PlannerURL,
		Timeout:  cfg.PlannerTimeout,
		DriverID: cfg.PlannerDriverID,
	})
	if err != nil {
		slog.Error("failed to create planner client", "error", err)
		os.Exit(1)
	}

	var locations handler.LocationLister = client

	// --- Location cache (optional) ----------------------------------------
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache falls back to the planner per request; keep going.
			slog.Warn("redis unreachable, location cache will miss", "error", err)
		}
		locations = cache.NewLocations(rdb, client, cfg.LocationsCacheTTL)
		slog.Info("location cache enabled", "ttl", cfg.LocationsCacheTTL.String())
	}

	// --- Plan archive (optional) ------------------------------------------
	// Both stay nil interfaces when DATABASE_URL is unset so the archive
	// routes are not mounted and sessions skip archiving.
	var (
		archive  handler.ArchiveServicer
		archiver session.Archiver
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := migrate(ctx, pool); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		svc := service.NewArchiveService(repo.NewPlanRepo(pool))
		archive, archiver = svc, svc
	}

	// --- Sessions ---------------------------------------------------------
	registry := session.NewRegistry(session.Deps{
		Planner:   client,
		Locations: locations,
		Archiver:  archiver,
	})
	go registry.RunSweeper(ctx, time.Minute, cfg.SessionIdleTimeout)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(registry, locations, archive, cfg.DisplayTimezone)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// A submit waits on two planner calls, so writes get room for both.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.PlannerTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "planner", cfg.PlannerURL)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending archive migrations. goose needs database/sql, so
// the pool is wrapped rather than opening a second connection string.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}
