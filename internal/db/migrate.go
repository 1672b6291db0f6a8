package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/gf-server/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Register the postgres and sqlite3 database drivers for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationFS embed.FS

var requiredTables = []string{"clients", "suppliers", "lines"}

// Migrate brings the schema up to date. With useSQL the embedded SQL files
// are applied through golang-migrate; otherwise gorm's AutoMigrate is used.
// Both paths are idempotent.
func Migrate(gdb *gorm.DB, t Target, useSQL bool) error {
	if useSQL {
		if err := runSQLMigrations(t); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range models.All() {
			if err := gdb.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}
	for _, table := range requiredTables {
		if !gdb.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func runSQLMigrations(t Target) error {
	src, err := iofs.New(migrationFS, "migrations/"+string(t.Driver))
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, t.MigrateURL())
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
