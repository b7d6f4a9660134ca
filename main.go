package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/studentms/portal-gateway/internal/api"
	"github.com/studentms/portal-gateway/internal/core/service"
	"github.com/studentms/portal-gateway/internal/infrastructure/backend"
	"github.com/studentms/portal-gateway/internal/infrastructure/config"
	mongodb "github.com/studentms/portal-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/studentms/portal-gateway/internal/infrastructure/db/redis"
	"github.com/studentms/portal-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	stores := redisdb.NewSessionStores(rdb, cfg.Redis.Prefix, cfg.SessionTTL)
	marks := redisdb.NewReadMarks(rdb, cfg.Redis.Prefix, cfg.SessionTTL)
	activity := mongodb.NewActivityRepository(db)
	authBackend := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	sessions := service.NewSessionService(authBackend, activity, log, cfg.Backend.SignOutTimeout)
	guard := service.NewGuard(sessions, activity, log)

	e := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Guard:      guard,
		Stores:     stores,
		Marks:      marks,
		Activity:   activity,
		Mongo:      db,
		Redis:      rdb,
		CookieName: cfg.SessionCookie,
		SessionTTL: cfg.SessionTTL,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("portal gateway up")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
