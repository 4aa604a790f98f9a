package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sinarjaya/maintenance-panel/internal/api"
	"github.com/sinarjaya/maintenance-panel/internal/infrastructure/config"
	"github.com/sinarjaya/maintenance-panel/internal/infrastructure/db/postgres"
	redisdb "github.com/sinarjaya/maintenance-panel/internal/infrastructure/db/redis"
	"github.com/sinarjaya/maintenance-panel/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level: cfg.LogLevel,
		Env:   cfg.Env,
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting maintenance panel")

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, postgres.Config{URI: cfg.Postgres.URI})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection")
	}
	defer pool.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, pool, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, draining server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("maintenance panel stopped")
}
