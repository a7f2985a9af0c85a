package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tazhibayda/devconnect-service/internal/config"
	api "github.com/tazhibayda/devconnect-service/internal/http"
	"github.com/tazhibayda/devconnect-service/internal/log"
	"github.com/tazhibayda/devconnect-service/internal/metrics"
	"github.com/tazhibayda/devconnect-service/internal/queue"
	"github.com/tazhibayda/devconnect-service/internal/repo"
	"github.com/tazhibayda/devconnect-service/internal/service"

	_ "github.com/tazhibayda/devconnect-service/docs"
)

// @title DevConnect API
// @version 0.1.0
// @description Accounts, developer profiles and posts behind JWT auth.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		stdlog.Fatalf("logger init: %v", err)
	}
	defer log.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
		if err := rds.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, rate limiting disabled", zap.Error(err))
			rds = nil
		}
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			logger.Warn("rabbit unreachable, events disabled", zap.Error(err))
		} else {
			pub = p
		}
	}
	defer pub.Close()

	users := service.NewUserService(store, store, store)
	posts := service.NewPostService(store, store)
	profiles := service.NewProfileService(store)

	h := api.NewHandler(users, posts, profiles, store, cfg.JWTSecret, cfg.JWTTTLSeconds, pub, cfg.RabbitExchange)
	r := api.NewRouter(h, rds, cfg.RateLimitPerMin)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("devconnect-service listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
