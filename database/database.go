package database

import (
	"fmt"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/config"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres connection described by cfg. TranslateError
// is enabled so duplicate-key violations surface as gorm.ErrDuplicatedKey
// regardless of driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate runs auto-migration for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Review{},
		&models.DownloadEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
