package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"

	"fitbuddy/backend/internal/catalog"
	"fitbuddy/backend/internal/config"
	"fitbuddy/backend/internal/db"
	"fitbuddy/backend/internal/handler"
	"fitbuddy/backend/internal/logging"
	"fitbuddy/backend/internal/metrics"
	"fitbuddy/backend/internal/repository"
	"fitbuddy/backend/internal/router"
	"fitbuddy/backend/internal/service"
	"fitbuddy/backend/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger, _ := logging.Setup(logging.SetupParams{Level: "error"})
		logger.Fatal().Err(err).Msg("load config")
	}

	logger, logCloser := logging.Setup(logging.SetupParams{
		Level:       cfg.LogLevel,
		FileName:    cfg.LogFile,
		LogToStdout: true,
		JSON:        cfg.LogJSON,
	})

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}

	applied, err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir))
	if err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}
	logger.Info().Strs("migrations", applied).Msg("schema up to date")

	var recorder metrics.Recorder = metrics.Noop{}
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder = prom
		metricsHandler = prom.Handler()
	}

	// restore and import write from other processes; the ttl bounds how long they stay hidden
	backend := storage.NewCachedBackend(storage.NewSQLiteBackend(database), cfg.CacheSizeMB, cfg.StoreCacheTTL, recorder)
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:     cfg.CatalogURL,
		Timeout:     cfg.CatalogTimeout,
		CacheSizeMB: cfg.CacheSizeMB,
		CacheTTL:    cfg.CatalogCacheTTL,
		Recorder:    recorder,
		Logger:      logger.With().Str("component", "catalog").Logger(),
	})

	userRepo := repository.NewUserRepository(database)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	trackerService := service.NewTrackerService(
		backend,
		catalogClient,
		recorder,
		logger.With().Str("component", "tracker").Logger(),
		time.Now,
	)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(authService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Exercise: handler.NewExerciseHandler(service.NewExerciseService(catalogClient)),
		Tools:    handler.NewToolsHandler(service.NewCalculatorService()),
		Tracker:  handler.NewTrackerHandler(trackerService),
	}, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         logger,
		Recorder:       recorder,
		MetricsHandler: metricsHandler,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("backend listening")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("run server")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		database.Close(),
	)
	if err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}
}
