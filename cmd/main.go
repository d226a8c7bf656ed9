package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/group-stage/brackets"
	"github.com/Dosada05/group-stage/config"
	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/handlers"
	"github.com/Dosada05/group-stage/repositories"
	api "github.com/Dosada05/group-stage/routes"
	"github.com/Dosada05/group-stage/services"
	"github.com/Dosada05/group-stage/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("driver", cfg.DatabaseDriver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
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

	if err := db.InitSchema(ctx, dbConn, cfg.Dialect); err != nil {
		logger.Error("failed to initialize schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database ready")

	// Загрузчик отчётов (Cloudflare R2) опционален
	var uploader storage.ObjectUploader
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		uploader = r2
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 is not configured, report export disabled")
	}

	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, organizer login disabled")
	}

	// WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)

	// Репозитории
	teamRepo := repositories.NewSQLTeamRepository(dbConn, cfg.Dialect)
	playerRepo := repositories.NewSQLPlayerRepository(dbConn, cfg.Dialect)
	matchRepo := repositories.NewSQLMatchRepository(dbConn, cfg.Dialect)
	goalRepo := repositories.NewSQLGoalRepository(dbConn, cfg.Dialect)

	// Сервисы
	txManager := services.NewTxManager(dbConn, cfg.Dialect)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))

	authService := services.NewAuthService(cfg.AdminPasswordHash, logger)
	rosterService := services.NewRosterService(txManager, teamRepo, playerRepo, wsHub, logger)
	fixtureService := services.NewFixtureService(txManager, teamRepo, matchRepo, rng, wsHub, logger)
	resultService := services.NewResultService(txManager, matchRepo, playerRepo, goalRepo, wsHub, logger)
	standingsService := services.NewStandingsService(txManager, teamRepo, matchRepo, goalRepo)
	reportService := services.NewReportService(txManager, standingsService, resultService, uploader, cfg.TopScorersLimit, logger)

	// HTTP
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Team:       handlers.NewTeamHandler(rosterService),
		Match:      handlers.NewMatchHandler(resultService),
		Tournament: handlers.NewTournamentHandler(fixtureService, standingsService, reportService, cfg.TopScorersLimit),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, cfg.JWTSecretKey, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
