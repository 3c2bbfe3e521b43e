package database

import (
	"fmt"

	"github.com/rallypoint/rallypoint-api/internal/models"
)

// Migrate creates or updates the schema for all models.
func Migrate() error {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.WaitlistEntry{},
		&models.HourLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
