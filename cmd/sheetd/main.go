package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/lozrp/sheetd/internal/config"
	"github.com/lozrp/sheetd/internal/handlers/api"
	"github.com/lozrp/sheetd/internal/repositories/sheets"
	sheetsvc "github.com/lozrp/sheetd/internal/services/sheet"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	var repo sheets.Repository

	// REDIS_URL overrides the addr/password/db settings when present
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		parsed, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
		} else {
			opts = parsed
		}
	}

	log.Printf("Connecting to Redis at: %s", opts.Addr)
	redisClient = redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
		cancel()
		log.Printf("Failed to connect to Redis: %v", pingErr)
		log.Println("Falling back to in-memory repository")
		_ = redisClient.Close()
		redisClient = nil
	} else {
		cancel()
		log.Println("Successfully connected to Redis")
		repo = sheets.NewRedisRepository(&sheets.RedisRepoConfig{Client: redisClient})
		log.Println("Using Redis for persistence")
	}

	if repo == nil {
		repo = sheets.NewInMemoryRepository()
	}

	handler := api.NewHandler(&api.HandlerConfig{
		Repository: repo,
		NewService: func(id string) sheetsvc.Service {
			return sheetsvc.NewService(&sheetsvc.ServiceConfig{
				SheetID:          id,
				Repository:       repo,
				AutosaveInterval: cfg.Sheet.AutosaveInterval,
				NoticeInterval:   cfg.Sheet.NoticeInterval,
			})
		},
	})

	mux := http.NewServeMux()
	handler.Routes(mux)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("sheetd listening on %s", cfg.Server.Addr)
		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = group.Wait()

	if redisClient != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis client: %v", closeErr)
		}
	}

	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Shutdown complete")
}
