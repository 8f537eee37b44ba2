package storage

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies the embedded schema for the dialect. It uses its own connection
// because closing the migrate instance closes the underlying database.
func RunMigrations(dialect, dsn string) error {
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return errors.Wrap(err, "open migration database")
	}
	defer db.Close()

	var driver database.Driver
	switch dialect {
	case dialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case dialectSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return errors.Errorf("no migrations for dialect %s", dialect)
	}
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}

	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return errors.Wrap(err, "create iofs source")
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return errors.Wrap(err, "create migrate instance")
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}
