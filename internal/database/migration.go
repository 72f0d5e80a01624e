package database

import (
	"fmt"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Account{},
		&models.BudgetRule{},
		&models.LedgerEntry{},
		&models.Category{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
