// Package migration runs the versioned SQL migrations and scaffolds new
// migration file pairs. Every schema change is a numbered up/down pair under
// migrations/; the applied version lives in the database itself, so there is
// no runtime "add column if missing" patching anywhere in the service.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator drives golang-migrate against an open postgres connection.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New builds a Migrator reading migration pairs from migrationsPath.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (mi *Migrator) Up() error {
	err := mi.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mi.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	mi.logVersion("Schema migrated")
	return nil
}

// Down rolls back every applied migration.
func (mi *Migrator) Down() error {
	err := mi.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		mi.log.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	mi.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back.
func (mi *Migrator) Steps(n int) error {
	err := mi.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		mi.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply %d migration steps: %w", n, err)
	}
	mi.logVersion("Migration steps applied")
	return nil
}

// GoTo migrates up or down until the schema sits at the given version.
func (mi *Migrator) GoTo(version uint) error {
	err := mi.m.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		mi.log.Info("Already at requested version", zap.Uint("version", version))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	mi.logVersion("Schema migrated to version")
	return nil
}

// Version reports the applied version and whether the schema is dirty.
// A database with no applied migrations reports version 0.
func (mi *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mi.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Its only
// legitimate use is clearing a dirty flag after a failed migration was fixed
// by hand.
func (mi *Migrator) Force(version int) error {
	mi.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := mi.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (mi *Migrator) Drop() error {
	mi.log.Warn("Dropping all database objects")
	if err := mi.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (mi *Migrator) Close() error {
	sourceErr, dbErr := mi.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mi *Migrator) logVersion(msg string) {
	version, dirty, err := mi.m.Version()
	if err != nil {
		mi.log.Info(msg)
		return
	}
	mi.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
