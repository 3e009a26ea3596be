package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nebulahq/auth-service/internal/api"
	"github.com/nebulahq/auth-service/internal/config"
	"github.com/nebulahq/auth-service/internal/handler"
	"github.com/nebulahq/auth-service/internal/infrastructure/auth"
	"github.com/nebulahq/auth-service/internal/infrastructure/kafka"
	redisinfra "github.com/nebulahq/auth-service/internal/infrastructure/redis"
	"github.com/nebulahq/auth-service/internal/observability"
	"github.com/nebulahq/auth-service/internal/repository"
	"github.com/nebulahq/auth-service/internal/repository/memory"
	"github.com/nebulahq/auth-service/internal/repository/redisrepo"
	service "github.com/nebulahq/auth-service/internal/services"
)

func main() {
	// Инициализируем логи и трейсы
	shutdown, _ := observability.Setup("auth-service")
	defer shutdown(context.Background())

	cfg := config.Load()

	// Токены
	tokenManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to build token manager: %v", err)
	}

	// Хранилище пользователей: Redis если настроен, иначе in-memory
	var userRepo repository.UserRepository
	if cfg.RedisAddr != "" {
		redisClient := redisinfra.NewClient(cfg.RedisAddr)
		defer redisClient.Close()
		userRepo = redisrepo.NewUserRepository(redisClient)
	} else {
		userRepo = memory.NewUserRepository()
	}

	// События аутентификации
	var events kafka.Publisher = kafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		events = producer

		auditConsumer := kafka.NewConsumer(cfg.KafkaBrokers, "auth-events", "auth-service-audit")
		go auditConsumer.Consume(context.Background())
		defer auditConsumer.Close()
	}

	// Сервис и роутер
	svc := service.NewAuthService(userRepo, tokenManager, events)
	router := api.SetupRouter(handler.NewHandler(svc), tokenManager)

	// Запускаем сервер
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}
	go func() {
		log.Printf("Starting server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
