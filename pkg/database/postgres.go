package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmardones/delivery-slots/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema and the partial unique index that backs
// the one-active-session-per-customer rule: two open rows for the same
// customer cannot coexist, no matter how the inserts interleave.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Region{},
		&models.Commune{},
		&models.TimeSlotTemplate{},
		&models.DeliverySlot{},
		&models.ZoneCoverage{},
		&models.DeliveryAddress{},
		&models.Reservation{},
		&models.ActiveSession{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_session_active
		ON active_sessions (customer_id)
		WHERE ended_at IS NULL
	`).Error
}
