package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

func migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Style{},
		&models.Appointment{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Double-booking protection lives in the database, not in the handlers.
	// Cancelled rows are excluded so a freed slot can be rebooked.
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_style_scheduled_at
			ON appointments (user_id, style_id, scheduled_at)
			WHERE user_id IS NOT NULL AND status <> 'cancelled'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_guest_email_style_scheduled_at
			ON appointments (contact_email, style_id, scheduled_at)
			WHERE user_id IS NULL AND contact_email IS NOT NULL AND contact_email <> '' AND status <> 'cancelled'`,
	}
	for _, stmt := range statements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
