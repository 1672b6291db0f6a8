package db

import (
	"database/sql"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteDriverName is the go-sqlite3 driver whose connections carry the
// Unicode lower() below.
const sqliteDriverName = "sqlite3_unicode"

var registerSQLiteOnce sync.Once

// FoldCase lowercases s with full Unicode rules. Search terms are folded
// with it and, on SQLite, so are the columns they are compared with.
func FoldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// SQLiteDialector returns a gorm dialector for dsn. SQLite's built-in
// lower() only folds ASCII; connections opened through this dialector
// replace it with FoldCase so LOWER(col) LIKE ? matches accented capitals.
func SQLiteDialector(dsn string) gorm.Dialector {
	registerSQLiteOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", foldValue, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}

// foldValue is the SQL lower(x). NULL and non-text values pass through.
func foldValue(v any) any {
	switch s := v.(type) {
	case string:
		return FoldCase(s)
	case []byte:
		return FoldCase(string(s))
	}
	return v
}
