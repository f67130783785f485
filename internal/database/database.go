package database

import (
	"fmt"

	"prepwise-backend/internal/config"
	"prepwise-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Info("database connected")
	return db
}

func AutoMigrate(db *gorm.DB, log *logrus.Logger) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Workplace{},
		&models.Quiz{},
		&models.Question{},
		&models.UserProgress{},
		&models.CommunityNote{},
		&models.StudyGroup{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Info("database migrated")
}
