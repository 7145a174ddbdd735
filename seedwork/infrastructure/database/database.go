package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database connection instance.
var DB *gorm.DB

// lifetimeGuardTrigger aborts any UPDATE that would clear is_lifetime once
// it has been set, enforcing Invariant L at the storage layer rather than
// only in application code (§3, §4.A).
const lifetimeGuardTrigger = `
CREATE TRIGGER IF NOT EXISTS trg_guard_is_lifetime
BEFORE UPDATE OF is_lifetime ON users
WHEN OLD.is_lifetime = 1 AND NEW.is_lifetime = 0
BEGIN
	SELECT RAISE(ABORT, 'is_lifetime cannot be cleared without dropping the guard');
END;
`

// Initialize opens the embedded SQLite store at the configured path. A
// single-file embedded store gives the single-writer semantics §5 asks
// for and real ACID transactions for the single-active-session guard and
// segment-index allocation, without requiring an external database server.
func Initialize(path string) error {
	logLevel := logger.Warn
	if os.Getenv("APP_ENV") == "development" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open embedded store: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite accepts only one writer at a time; cap the pool so the driver
	// serializes writes instead of surfacing "database is locked" errors.
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Connected to embedded store at %s", path)
	return nil
}

// InstallLifetimeGuard creates the storage-layer trigger that enforces
// Invariant L. Called once, after migrations, during startup.
func InstallLifetimeGuard() error {
	return DB.Exec(lifetimeGuardTrigger).Error
}

// WithLifetimeGuardDropped performs the documented two-step administrative
// override (§4.A): drop the guard, run fn inside the same exclusive
// transaction, then recreate the guard before committing. This is the only
// sanctioned way to clear is_lifetime once set.
func WithLifetimeGuardDropped(fn func(tx *gorm.DB) error) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DROP TRIGGER IF EXISTS trg_guard_is_lifetime`).Error; err != nil {
			return fmt.Errorf("failed to drop lifetime guard: %w", err)
		}
		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Exec(lifetimeGuardTrigger).Error; err != nil {
			return fmt.Errorf("failed to recreate lifetime guard: %w", err)
		}
		return nil
	})
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection.
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB object: %w", err)
	}
	return sqlDB.Close()
}
