package main

import (
	"log"
	"os"

	"anoa.com/askhub/internal/bootstrap"
	"anoa.com/askhub/internal/config"
	"anoa.com/askhub/internal/server"
	"anoa.com/askhub/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedCategories(db); err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}
	if err := bootstrap.SeedRewards(db); err != nil {
		log.Fatalf("failed to seed rewards: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
	} else {
		log.Println("REDIS_URL not set, running without redis (rate limits and live notifications disabled)")
	}

	srv := server.NewServer(db, redisClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
