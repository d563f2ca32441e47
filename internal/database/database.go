// Package database opens the PostgreSQL connection and applies schema
// migrations on startup.
package database

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the PostgreSQL database at the given DSN and returns the
// GORM handle used for all queries.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// RunMigrations applies any pending up migrations from the migrations/
// directory. Running them on startup keeps the schema in sync; migrate
// tracks applied versions in schema_migrations, and ErrNoChange just means
// there is nothing new to apply.
func RunMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
