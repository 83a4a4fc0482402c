package database

import (
	"log"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // duplicate-key violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Registrant{},
		&models.Ticket{},
		&models.Coupon{},
		&models.CouponLog{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Sparse uniqueness per role collection: at most one record per email
	// and per ticket code, rows without them excluded. These indexes are
	// what makes retry-on-duplicate a safe allocator.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registrant_email
		ON registrants (role, email)
		WHERE email IS NOT NULL
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registrant_ticket_code
		ON registrants (role, ticket_code)
		WHERE ticket_code IS NOT NULL
	`)

	return db
}
