package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/devdreams-backend/internal/api"
	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/config"
	"github.com/dom/devdreams-backend/internal/mailer"
	"github.com/dom/devdreams-backend/internal/repository/postgres"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Rate-limit window for the auth route group.
const rateLimitWindow = 10 * time.Minute

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Rate limiter backend
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	limiter := middleware.NewRedisLimiter(redisClient, rateLimitWindow)

	// Initialize services
	services := service.NewServices(repos, mailer.NewSMTPMailer(cfg), cfg)

	// Initialize router
	router := api.NewRouter(services, limiter, cfg, log)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Warn("failed to close redis client", "error", err)
	}

	log.Info("server stopped")
}
