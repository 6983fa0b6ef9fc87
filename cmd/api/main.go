// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/holiday"
	"github.com/pkordes/travel-planner/backend/internal/jobs"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
	"github.com/pkordes/travel-planner/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
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

	opts, err := config.LoadPlanningOptions(cfg.PlanningConfig)
	if err != nil {
		slog.Error("planning options", "error", err)
		os.Exit(1)
	}
	loc := time.UTC
	if opts.Timezone != "" {
		// LoadPlanningOptions already validated the zone.
		loc, _ = time.LoadLocation(opts.Timezone)
	}

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	if err := migrate(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Holidays ---------------------------------------------------------
	var cache holiday.Cache
	if cfg.RedisURL != "" {
		client, err := holiday.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// The lookup computes every time without a cache.
			slog.Warn("holiday cache disabled", "error", err)
		} else {
			defer client.Close()
			cache = holiday.NewRedisCache(client, cfg.HolidayCacheTTL)
			slog.Info("holiday cache enabled", "ttl", cfg.HolidayCacheTTL.String())
		}
	}
	holidays := holiday.NewLookup(holiday.NewProvider(), cache, logger)

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	tripSvc := service.NewTripService(tripRepo)
	memberSvc := service.NewMemberService(tripRepo, repo.NewTripMemberRepo(pool))
	calendarSvc := service.NewCalendarService(repo.NewHolidayCalendarRepo(pool), repo.NewCustomDayRepo(pool), holidays)
	exportSvc := service.NewExportService(tripRepo, calendarSvc)
	planningSvc := service.NewPlanningService(tripSvc, calendarSvc, opts, logger)

	// --- Jobs -------------------------------------------------------------
	if cfg.StatusSyncCron != "off" {
		c, err := jobs.NewStatusSync(tripRepo, loc, logger).Schedule(cfg.StatusSyncCron)
		if err != nil {
			slog.Error("failed to schedule status sync", "error", err)
			os.Exit(1)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		slog.Info("status sync scheduled", "spec", cfg.StatusSyncCron, "timezone", loc.String())
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID, RealIP, Logger, Recoverer,
	// CORS, body limit. Auth is applied per route group by the handler package.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srvHandler := handler.NewServer(tripSvc, memberSvc, calendarSvc, planningSvc, exportSvc)
	r.Mount("/", srvHandler.Routes(middleware.NewAuth([]byte(cfg.JWTSecret), cfg.JWTAudience)))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return
	}
	slog.Info("server stopped")
}

// migrate applies every pending migration embedded in the migrations package.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}
