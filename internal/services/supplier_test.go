package services

import (
	"testing"

	"github.com/diewo77/gf-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReconcileSupplier_SameCodeOnce(t *testing.T) {
	d := setupDB(t)
	in := SupplierInput{Code: "Amin Auto", Name: "Amin Auto"}

	id1, err := ReconcileSupplier(d, "LOCAL-TEST", in)
	require.NoError(t, err)
	id2, err := ReconcileSupplier(d, "LOCAL-TEST", in)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var count int64
	d.Model(&models.Supplier{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReconcileSupplier_ScopedByClient(t *testing.T) {
	d := setupDB(t)
	in := SupplierInput{Code: "S1", Name: "Same"}
	a, err := ReconcileSupplier(d, "A", in)
	require.NoError(t, err)
	b, err := ReconcileSupplier(d, "B", in)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestReconcileSupplier_KeyFallbacks(t *testing.T) {
	d := setupDB(t)

	_, err := ReconcileSupplier(d, "C", SupplierInput{Name: " Garage Nord "})
	require.NoError(t, err)
	_, err = ReconcileSupplier(d, "C", SupplierInput{Phone: "0555"})
	require.NoError(t, err)
	_, err = ReconcileSupplier(d, "C", SupplierInput{Code: "X-9"})
	require.NoError(t, err)

	var got []models.Supplier
	require.NoError(t, d.Order("id").Find(&got).Error)
	require.Len(t, got, 3)
	assert.Equal(t, "Garage Nord", got[0].Code)
	assert.Equal(t, "Garage Nord", got[0].Name)
	assert.Equal(t, NoCode, got[1].Code)
	assert.Equal(t, NoCode, got[1].Name)
	assert.Equal(t, "0555", got[1].Phone)
	assert.Equal(t, "X-9", got[2].Name)
}

func TestReconcileSupplier_FillsOnlyBlanks(t *testing.T) {
	d := setupDB(t)
	id, err := ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Name: "Sup", Phone: "0555"})
	require.NoError(t, err)

	_, err = ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Name: "Other name", Phone: "0666", Email: " s1@example.dz "})
	require.NoError(t, err)
	_, err = ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Phone: "", Email: "", Notes: "late note"})
	require.NoError(t, err)

	var s models.Supplier
	require.NoError(t, d.First(&s, id).Error)
	assert.Equal(t, "Sup", s.Name)
	assert.Equal(t, "0555", s.Phone)
	assert.Equal(t, "s1@example.dz", s.Email)
	assert.Equal(t, "late note", s.Notes)
	assert.Equal(t, "", s.Address)
}

func TestReconcileSupplier_NoUpdateWhenUnchanged(t *testing.T) {
	d := setupDB(t)
	_, err := ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Phone: "0555"})
	require.NoError(t, err)

	updates := 0
	require.NoError(t, d.Callback().Update().Before("gorm:update").Register("test:count_updates", func(tx *gorm.DB) {
		updates++
	}))
	_, err = ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Phone: "0999"})
	require.NoError(t, err)
	assert.Zero(t, updates)

	_, err = ReconcileSupplier(d, "LOCAL-TEST", SupplierInput{Code: "S1", Email: "a@b.dz"})
	require.NoError(t, err)
	assert.Equal(t, 1, updates)
}
