package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wanderly/auth-service/internal/api"
	"github.com/wanderly/auth-service/internal/core/ports"
	"github.com/wanderly/auth-service/internal/infrastructure/config"
	redisdb "github.com/wanderly/auth-service/internal/infrastructure/db/redis"
	"github.com/wanderly/auth-service/internal/infrastructure/store/file"
	"github.com/wanderly/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})
	cfg := config.Load(log)

	store := file.NewStore(cfg.StorePath, log.With().Str("component", "store").Logger())
	store.Load()

	var throttle ports.LoginThrottle = redisdb.NoopThrottle{}
	if cfg.Throttle.Enabled {
		client, err := redisdb.Connect(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("throttle enabled but redis unreachable")
		}
		defer func() { _ = client.Close() }()
		throttle = redisdb.NewLoginThrottle(client, cfg.Throttle.MaxFailures, cfg.Throttle.Window, log)
	}

	e := api.NewRouter(cfg, store, throttle, log)

	// Bounded request time; the original host had no timeouts at all.
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("authentication server running")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Final flush: the only snapshot write whose failure is surfaced.
	if err := store.Flush(); err != nil {
		log.Error().Err(err).Msg("final snapshot flush failed")
	}
	log.Info().Msg("server stopped")
}
