package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/confdesk/confreg-backend/internal/config"
	"github.com/confdesk/confreg-backend/internal/database"
	"github.com/confdesk/confreg-backend/internal/handler"
	"github.com/confdesk/confreg-backend/internal/logger"
	"github.com/confdesk/confreg-backend/internal/mailer"
	"github.com/confdesk/confreg-backend/internal/repository"
	"github.com/confdesk/confreg-backend/internal/router"
	"github.com/confdesk/confreg-backend/internal/service"
	"github.com/confdesk/confreg-backend/internal/session"
	"github.com/confdesk/confreg-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ConfReg Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	registrationRepo := repository.NewRegistrationRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL)
	activity := service.NewActivityLogger(activityRepo, log)
	authService := service.NewAuthService(adminRepo, sessions, activity, log)
	mail := mailer.New(cfg, log)
	registrationService := service.NewRegistrationService(registrationRepo, activity, mail, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, sessions, cfg.SessionTTL),
		Registration: handler.NewRegistrationHandler(registrationService),
		Admin:        handler.NewAdminRegistrationHandler(registrationService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(sessions, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
