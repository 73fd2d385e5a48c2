package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/config"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/db"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/events"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/handlers"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/metrics"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
	api "github.com/Jeff92400/Carambole-tournament-management-sub001/routes"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/services"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/storage"
)

const shutdownTimeout = 15 * time.Second

func newLogger(format string) *slog.Logger {
	formatter := charmlog.JSONFormatter
	if format == "text" {
		formatter = charmlog.TextFormatter
	}
	handler := charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: true,
		Formatter:       formatter,
		Level:           charmlog.InfoLevel,
	})
	return slog.New(handler)
}

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dialect, err := db.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		logger.Error("invalid database driver", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(dialect, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established", slog.String("driver", string(dialect)))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	version, err := db.Migrate(rootCtx, dbConn, dialect, logger)
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrated", slog.Int64("version", version))

	var uploader storage.FileUploader
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Config.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(rootCtx, r2Config)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("Cloudflare R2 not configured, final standings will not be archived")
	}

	hook := events.NewNoopHook()
	if cfg.GCPProject != "" && cfg.RankingsTopic != "" {
		psClient, err := pubsub.NewClient(rootCtx, cfg.GCPProject)
		if err != nil {
			logger.Error("failed to create pubsub client", slog.Any("error", err))
			os.Exit(1)
		}
		defer psClient.Close()
		hook = events.NewPubSubHook(psClient, cfg.RankingsTopic, logger)
		logger.Info("rankings hook publishing to pubsub", slog.String("topic", cfg.RankingsTopic))
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	tournamentRepo := repositories.NewTournamentRepository(dbConn)
	pouleResultRepo := repositories.NewPouleResultRepository(dbConn)
	matchRepo := repositories.NewMatchRepository(dbConn)
	runRepo := repositories.NewProgressionRunRepository(dbConn)
	positionRepo := repositories.NewFinalPositionRepository(dbConn)
	settingsRepo := repositories.NewTenantSettingsRepository(dbConn)
	pointsRepo := repositories.NewPointsTableRepository(dbConn)
	logger.Info("Repositories initialized")

	tournamentService := services.NewTournamentService(tournamentRepo)
	progressionService := services.NewProgressionService(services.ProgressionServiceDeps{
		DB:           dbConn,
		Tournaments:  tournamentRepo,
		PouleResults: pouleResultRepo,
		Matches:      matchRepo,
		Runs:         runRepo,
		Positions:    positionRepo,
		Locker:       repositories.NewTournamentLocker(dialect),
		Settings:     services.NewSettingsProvider(settingsRepo, cfg.Progression),
		Points:       services.NewPointsTable(pointsRepo),
		Hook:         hook,
		Uploader:     uploader,
		Metrics:      metricsSvc,
		Logger:       logger,
	})
	logger.Info("Services initialized")

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	progressionHandler := handlers.NewProgressionHandler(progressionService, tournamentService, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			JWTSecret:          []byte(cfg.JWTSecretKey),
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			MetricsHandler:     metricsHandler,
		},
		tournamentHandler,
		progressionHandler,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("address", server.Addr),
			slog.Duration("startup", time.Since(startTime)),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
