package main

import (
	"context"
	"flag"
	"time"

	"gym_backend/internal/auth"
	"gym_backend/internal/config"
	"gym_backend/internal/database"
	"gym_backend/internal/logger"
	"gym_backend/internal/repositories"
	"gym_backend/internal/services"
)

// migrate создает/обновляет схему; с -seed-admin дополнительно
// создает первого администратора из конфигурации.
func main() {
	seedAdmin := flag.Bool("seed-admin", false, "create the first admin from config if users table is empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db.WithContext(ctx)); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if *seedAdmin {
		authService := services.NewAuthService(
			repositories.NewUserRepository(),
			auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute),
		)
		created, err := authService.SeedAdmin(db.WithContext(ctx), services.AdminSeed{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
			Name:     cfg.Admin.Name,
			GymID:    cfg.Admin.GymID,
		})
		if err != nil {
			logger.Fatal("Failed to seed admin", "error", err)
		}
		logger.Info("Admin seeding finished", "created", created)
	}

	logger.Info("Migrations applied")
}
