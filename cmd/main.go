package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"accounts-api/internal/config"
	"accounts-api/internal/database"
	"accounts-api/internal/handlers"
	"accounts-api/internal/messaging"
	"accounts-api/internal/repository"
	"accounts-api/internal/server"
	"accounts-api/internal/services"
	"accounts-api/internal/token"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting accounts-api in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	tokens, err := token.NewManagerFromFiles(
		cfg.App.JWT.PrivateKeyPath,
		cfg.App.JWT.PublicKeyPath,
		cfg.App.JWT.AccessTTLMinutes,
		cfg.App.JWT.RefreshTTLDays,
	)
	if err != nil {
		sugar.Fatalf("failed to load JWT keys: %v", err)
	}

	var publisher messaging.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic != "" {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		sugar.Infof("Kafka publisher configured for topic %s", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewNoopPublisher()
		sugar.Warn("Kafka not configured, user events will not be published")
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.User.Collection)
	sessionRepo := repository.NewRedisSessionRepo(rdb)

	accountSvc := services.NewAccountService(userRepo, publisher, cfg.Security.PasswordHashCost, logger)
	authSvc := services.NewAuthService(userRepo, sessionRepo, tokens, logger)

	userHandler := handlers.NewUserHandler(accountSvc, logger)
	authHandler := handlers.NewAuthHandler(authSvc, logger)

	app := server.New(cfg, userHandler, authHandler, tokens, logger)

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		sugar.Errorf("Kafka publisher close error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		sugar.Errorf("Redis client close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete. Goodbye!")
}
