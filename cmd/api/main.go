package main

import (
	"context"
	"log"
	"time"

	"shopmate-chat/config"
	"shopmate-chat/internal/handler"
	"shopmate-chat/internal/llm"
	redisx "shopmate-chat/internal/redis"
	"shopmate-chat/internal/repository"
	"shopmate-chat/internal/server"
	"shopmate-chat/internal/services"
	"shopmate-chat/pkg/database"
	"shopmate-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	rdb := redisx.NewClient(redisx.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisx.Ping(ctx, rdb); err != nil {
		// Cache misses fall through to Postgres, so a dead Redis only costs speed.
		l.Warnf("Redis unreachable, continuing without warm cache: %s", err)
	}
	cache := redisx.NewContextCache(rdb, time.Duration(cfg.CacheTTLSec)*time.Second)

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(chatRepo, llm.NewClient(cfg), cache, l)

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Chat: handler.NewChatHandler(chatService),
	}, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
