package db

import (
	"fmt" // DSN formatting

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger settings
)

// Open opens the named in-memory ledger database and migrates its schema.
// The database lives only as long as the process keeps a connection open.
func Open(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name) // Shared in-memory database
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Logging happens through logrus
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", name, err) // Connection failure
	}
	sqlDB, err := db.DB() // Underlying connection pool
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // SQLite serialises writers; one connection also keeps the memory database alive
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logrus.WithField("ledger", name).Info("Ledger ready") // Log successful setup
	return db, nil
}

// Migrate performs automatic migration for the ledger schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing constraints, columns and indexes
	if err := db.AutoMigrate(&UserRecord{}, &PaymentRecord{}, &FriendshipRecord{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
