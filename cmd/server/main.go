package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daleel-backend/internal/config"
	"daleel-backend/internal/database"
	"daleel-backend/internal/handlers"
	"daleel-backend/internal/middleware"
	"daleel-backend/internal/repository"
	"daleel-backend/internal/router"
	"daleel-backend/internal/services"
	"daleel-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Daleel Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	universityRepo := repository.NewUniversityRepo(pool)
	newsRepo := repository.NewNewsRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	likeRepo := repository.NewLikeRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	gateway := services.NewGatewayClient(cfg.GatewayURL, cfg.GatewayAPIKey, cfg.GatewayModel, cfg.GatewayRetries)
	assistant := services.NewAssistantService(universityRepo, gateway, redisClient, cfg.ChatDailyQuota)
	log.Println("✓ AI gateway client initialized")

	// ──── Initialize Handlers ────
	universityHandler := handlers.NewUniversityHandler(universityRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo, redisClient)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo)
	chatHandler := handlers.NewChatHandler(assistant)

	// ──── Step 5: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClient, handlers.NewsChannel, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		universityHandler,
		newsHandler,
		profileHandler,
		likeHandler,
		chatHandler,
		wsHub,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		// The assistant call can hold a request through gateway retries.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Daleel Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
