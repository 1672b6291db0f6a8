package db

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/diewo77/gf-server/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm/schema"
)

func TestAutoMigrateTwice(t *testing.T) {
	d := openMemory(t)
	require.NoError(t, Migrate(d, Target{Driver: DriverSQLite}, false))
	require.NoError(t, Migrate(d, Target{Driver: DriverSQLite}, false))
	assert.True(t, d.Migrator().HasIndex(&models.Supplier{}, "idx_suppliers_client_code"))
}

func TestSQLMigrationsMatchModels(t *testing.T) {
	target := Target{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "gf.db")}
	d, err := Open(target, false)
	require.NoError(t, err)

	require.NoError(t, Migrate(d, target, true))
	// second run is a no-op
	require.NoError(t, Migrate(d, target, true))

	s := models.Supplier{ClientID: "LOCAL-TEST", Code: "Amin Auto", Name: "Amin Auto"}
	require.NoError(t, d.Create(&s).Error)
	dup := models.Supplier{ClientID: "LOCAL-TEST", Code: "Amin Auto", Name: "Again"}
	assert.Error(t, d.Create(&dup).Error, "unique (client_id, supplier_code)")

	l := models.Line{
		ClientID:   "LOCAL-TEST",
		SupplierID: &s.ID,
		Reference:  "REF-1",
		Prix:       decimal.NewNullDecimal(decimal.RequireFromString("3500.50")),
		Date:       "2024-05-01",
	}
	require.NoError(t, d.Create(&l).Error)

	var got models.Line
	require.NoError(t, d.First(&got, l.ID).Error)
	assert.True(t, got.Prix.Valid)
	assert.Equal(t, "3500.5", got.Prix.Decimal.String())
}

func TestStringColumnsAreUnboundedOnPostgres(t *testing.T) {
	pg := postgres.Dialector{Config: &postgres.Config{}}
	for _, m := range models.All() {
		sch, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		for _, f := range sch.Fields {
			if f.FieldType.Kind() != reflect.String {
				continue
			}
			assert.Equal(t, "text", pg.DataTypeOf(f), "%s.%s", sch.Table, f.DBName)
		}
	}

	up, err := migrationFS.ReadFile("migrations/postgres/000001_init.up.sql")
	require.NoError(t, err)
	assert.NotContains(t, strings.ToUpper(string(up)), "VARCHAR")
}
