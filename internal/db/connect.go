// Package db opens the database, applies the schema and seeds the tenant.
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to t. gorm's SQL log is silent unless debug is set.
// The connection is attempted once; a failure is returned to the caller.
func Open(t Target, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch t.Driver {
	case DriverPostgres:
		dialector = postgres.Open(t.DSN)
	case DriverSQLite:
		dialector = SQLiteDialector(t.DSN)
	default:
		return nil, fmt.Errorf("unknown driver %q", t.Driver)
	}
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open %s database %s: %w", t.Driver, t.Masked(), err)
	}
	if err := Ping(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Ping runs a trivial query.
func Ping(gdb *gorm.DB) error {
	if err := gdb.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("db ping failed: %w", err)
	}
	return nil
}
