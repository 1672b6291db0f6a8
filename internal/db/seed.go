package db

import (
	"fmt"

	"github.com/diewo77/gf-server/auth"
	"github.com/diewo77/gf-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedClient is the tenant provisioned at startup.
type SeedClient struct {
	ID     string
	Name   string
	APIKey string
}

// Seed inserts the tenant unless a row with the same id already exists.
// An existing row is left untouched. It reports whether a row was created.
func Seed(gdb *gorm.DB, sc SeedClient) (bool, error) {
	hash, err := auth.HashKey(sc.APIKey)
	if err != nil {
		return false, fmt.Errorf("hash seed api key: %w", err)
	}
	c := models.Client{ID: sc.ID, Name: sc.Name, APIKey: hash}
	res := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&c)
	if res.Error != nil {
		return false, fmt.Errorf("seed client %s: %w", sc.ID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
