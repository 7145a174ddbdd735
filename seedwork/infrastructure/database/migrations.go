package database

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations executes the versioned schema migrations. Each migration
// file is additive (CREATE TABLE/INDEX IF NOT EXISTS) and applied at most
// once, tracked by golang-migrate's own schema_migrations bookkeeping.
func RunMigrations(migrationsPath string) error {
	log.Printf("Running migrations from path: %s", migrationsPath)

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	if err := runMigrateInstance(sqlDB, migrationsPath); err != nil {
		return err
	}

	// Defensive additive patches that may need to run outside migrate's own
	// versioning (e.g. a column introduced after a table's initial
	// migration already shipped): always check column presence first.
	return ensureColumns()
}

func runMigrateInstance(db *sql.DB, migrationsPath string) error {
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite3 migrate driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", absPath)
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		log.Println("No migrations to run")
	} else {
		log.Println("Migrations completed successfully")
	}

	return nil
}

// ensureColumns performs idempotent additive column checks, the shape §4.A
// requires of migrations that alter existing tables: check presence via
// PRAGMA table_info before issuing ALTER TABLE.
func ensureColumns() error {
	patches := []struct {
		table, column, definition string
	}{
		{"users", "zoom_access_token", "TEXT NOT NULL DEFAULT ''"},
		{"users", "zoom_refresh_token", "TEXT NOT NULL DEFAULT ''"},
		{"users", "zoom_token_expires_at", "DATETIME"},
	}

	for _, p := range patches {
		exists, err := columnExists(p.table, p.column)
		if err != nil {
			return fmt.Errorf("checking column %s.%s: %w", p.table, p.column, err)
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", p.table, p.column, p.definition)
		if err := DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("adding column %s.%s: %w", p.table, p.column, err)
		}
		log.Printf("added column %s.%s", p.table, p.column)
	}
	return nil
}

func columnExists(table, column string) (bool, error) {
	rows, err := DB.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return false, err
	}

	for rows.Next() {
		values := make([]interface{}, len(cols))
		scanArgs := make([]interface{}, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return false, err
		}
		for i, c := range cols {
			if c == "name" {
				if name, ok := values[i].(string); ok && name == column {
					return true, nil
				}
			}
		}
	}
	return false, rows.Err()
}
