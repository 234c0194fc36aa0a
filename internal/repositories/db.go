// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"simplepay/internal/config"
	"simplepay/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection, applies the pool settings and
// migrates the schema.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	// Configure GORM logger to ignore "record not found" errors
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema and makes sure the lookup rows the
// business rules depend on exist.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.UserType{},
		&models.DocumentType{},
		&models.TransferStatus{},
		&models.User{},
		&models.Wallet{},
		&models.Transfer{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return SeedLookups(db)
}

// SeedLookups inserts the default user types, document types and transfer
// statuses, leaving rows that already exist untouched.
func SeedLookups(db *gorm.DB) error {
	userTypes := models.DefaultUserTypes()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&userTypes).Error; err != nil {
		return fmt.Errorf("seed user types: %w", err)
	}
	documentTypes := models.DefaultDocumentTypes()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&documentTypes).Error; err != nil {
		return fmt.Errorf("seed document types: %w", err)
	}
	statuses := models.DefaultTransferStatuses()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return fmt.Errorf("seed transfer statuses: %w", err)
	}

	// Seeded rows carry explicit ids, so postgres sequences must be moved
	// past them before the CRUD endpoints insert new lookup rows.
	if db.Dialector.Name() == "postgres" {
		for _, table := range []string{"user_types", "document_types"} {
			stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %[1]s))", table)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}
	}
	return nil
}

// Ping checks that the database answers.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
)

// translate maps GORM sentinel errors onto the repository ones.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
