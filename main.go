package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".env")
	setupLogging(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = connect(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(cfg, r.Group("/"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("url", cfg.APIURL.String()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := models.DB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("Server stopped")
}

// setupLogging configures the global logger.
//
// The log format can be explicitly set. If it is not set, it defaults
// to human readable for development and JSON for release.
func setupLogging(cfg config.Config) {
	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// connect uses PostgreSQL when a DATABASE_URL is configured. If it is not
// configured or not reachable, a SQLite database in the data directory is used.
func connect(cfg config.Config) error {
	if cfg.DatabaseURL != "" {
		err := models.ConnectPostgres(cfg.DatabaseURL)
		if err == nil {
			log.Info().Msg("Connected to PostgreSQL")
			return nil
		}
		log.Warn().Err(err).Msg("PostgreSQL is not reachable, falling back to SQLite")
	}

	err := os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.DataDir, "gorm.db")
	log.Info().Str("path", path).Msg("Using SQLite")
	return models.Connect(path)
}
