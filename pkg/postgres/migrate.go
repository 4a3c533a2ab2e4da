package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending migrations from sourceURL, for example
// "file://./migrations". A database already at the latest version is not an
// error.
func RunMigrations(dsn, sourceURL string) error {
	return stepMigrations(dsn, sourceURL, (*migrate.Migrate).Up, "up")
}

// RunMigrationsDown rolls back every applied migration.
func RunMigrationsDown(dsn, sourceURL string) error {
	return stepMigrations(dsn, sourceURL, (*migrate.Migrate).Down, "down")
}

func stepMigrations(dsn, sourceURL string, step func(*migrate.Migrate) error, direction string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate %s: %w", direction, err)
	}
	return nil
}
