package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vishnu-gaddam/Nutrify/config"
	"github.com/vishnu-gaddam/Nutrify/internal/api"
	"github.com/vishnu-gaddam/Nutrify/internal/catalog"
	"github.com/vishnu-gaddam/Nutrify/internal/database"
	"github.com/vishnu-gaddam/Nutrify/internal/middleware"
	"github.com/vishnu-gaddam/Nutrify/internal/server"
	"github.com/vishnu-gaddam/Nutrify/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The meal catalog is loaded once and injected; a missing file degrades
	// to an empty catalog instead of refusing to start.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Printf("Failed to load meal catalog: %v", err)
		cat = catalog.New(nil)
	} else {
		log.Printf("Loaded %d meals from %s", cat.Len(), cfg.CatalogPath)
	}

	// Redis is optional; without it plan generation is simply unthrottled.
	var rateLimiter *middleware.RateLimiter
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			rateLimiter = middleware.NewPlanGenerationRateLimiter(redisClient)
		}
	}

	// S3 is optional; without it image upload returns 503.
	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, image upload disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	if cfg.AdminPassword != "" {
		if err := authService.EnsureDefaultAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("Failed to seed default admin: %v", err)
		}
	}

	srv := server.New(cfg, api.Services{
		Auth:        authService,
		Plans:       service.NewMealPlanService(db, cat),
		Health:      service.NewHealthService(db),
		Tracking:    service.NewTrackingService(db),
		Images:      imageService,
		RateLimiter: rateLimiter,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
