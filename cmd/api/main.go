package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/server"
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

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, AI rate limiting disabled: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, image upload disabled: %v", err)
		s3Config = nil
	}

	srv := server.New(cfg, db, redisClient, s3Config)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
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
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
