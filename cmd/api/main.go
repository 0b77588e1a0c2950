package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profhub/internal/config"
	"profhub/internal/database"
	"profhub/internal/pkg/logger"
	"profhub/internal/repository"
	"profhub/internal/router"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "dev", os.Stderr)
		boot.Fatal().Err(err).Msg("config load failed")
	}

	log := logger.New(cfg.LogLevel, cfg.AppEnv, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		Log:      log,
		LogLevel: logger.GormLevel(cfg.LogLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	srv := newServer(cfg, db, log)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newServer(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router.New(cfg, db, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
