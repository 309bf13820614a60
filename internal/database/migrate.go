package database

import (
	"gym_backend/internal/logger"
	"gym_backend/internal/models"

	"gorm.io/gorm"
)

// AllModels - порядок важен: таблицы со ссылками идут после тех, на кого ссылаются
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Membership{},
		&models.Trainer{},
		&models.Member{},
		&models.Equipment{},
		&models.MemberSubscription{},
		&models.Transaction{},
	}
}

// AutoMigrate создает/обновляет схему для всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	logger.Info("AutoMigrate completed")
	return nil
}
