package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/workfusion/workforce-system/internal/api"
	"github.com/workfusion/workforce-system/internal/core/service"
	"github.com/workfusion/workforce-system/internal/infrastructure/config"
	"github.com/workfusion/workforce-system/internal/infrastructure/db/mongo"
	"github.com/workfusion/workforce-system/internal/infrastructure/db/redis"
	"github.com/workfusion/workforce-system/internal/infrastructure/queue"
	"github.com/workfusion/workforce-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- RabbitMQ ---
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer amqpConn.Close()

	mailPublisher, err := queue.NewMailPublisher(amqpConn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up mail publisher")
	}
	defer mailPublisher.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	profileRepo := mongo.NewProfileRepository(db)
	leaveRepo := mongo.NewLeaveRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)
	outboxRepo := mongo.NewOutboxRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, profileRepo, leaveRepo, notificationRepo, outboxRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create indexes")
		}
	}

	// --- Services ---
	scopeResolver := service.NewScopeResolver(profileRepo)
	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	notificationService := service.NewNotificationService(notificationRepo, outboxRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, outboxRepo, notificationService, log)
	leaveService := service.NewLeaveService(leaveRepo, profileRepo, scopeResolver, dispatcher, log)
	resetService := service.NewPasswordResetService(userRepo, redis.NewOTPStore(rdb), mailPublisher,
		time.Duration(cfg.Reset.OTPTTLMinutes)*time.Minute, log)

	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
		Auth:          authService,
		Leave:         leaveService,
		Notifications: notificationService,
		Reset:         resetService,
		Mongo:         db,
		Redis:         rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
