package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/uptask-dev/uptask-api/internal/auth"
	"github.com/uptask-dev/uptask-api/internal/config"
	"github.com/uptask-dev/uptask-api/internal/database"
	"github.com/uptask-dev/uptask-api/internal/router"
	"github.com/uptask-dev/uptask-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	mailer, err := services.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to configure mailer: %v", err)
	}

	r := router.New(cfg, mailer)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
