package services

import (
	"testing"

	"github.com/diewo77/gf-server/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(db.SQLiteDialector("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d, db.Target{Driver: db.DriverSQLite}, false))
	return d
}
