package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one ingested priced-part record. Immutable once inserted.
type Line struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"type:text;not null;index" json:"client_id"`

	// SupplierID is a soft reference to suppliers.id.
	SupplierID *uint `gorm:"index" json:"supplier_id,omitempty"`

	Reference   string              `gorm:"type:text" json:"reference"`
	Designation string              `gorm:"type:text" json:"designation"`
	Marque      string              `gorm:"type:text" json:"marque"`
	Prix        decimal.NullDecimal `gorm:"type:numeric" json:"prix"`
	Date        string              `gorm:"type:text" json:"date"`
	CreatedAt   time.Time           `json:"created_at"`
}

// LineRow is a line joined with its supplier, as shown by the browsing pages.
type LineRow struct {
	ID            uint
	SupplierID    *uint
	Reference     string
	Designation   string
	Marque        string
	Prix          decimal.NullDecimal
	Date          string
	CreatedAt     time.Time
	SupplierName  *string
	SupplierPhone *string
	SupplierEmail *string
}

// PriceLabel renders the price or an empty string when unknown.
func (l LineRow) PriceLabel() string {
	if !l.Prix.Valid {
		return ""
	}
	return l.Prix.Decimal.String()
}

// Supplier returns the joined supplier name, or "" when unlinked.
func (l LineRow) Supplier() string {
	if l.SupplierName == nil {
		return ""
	}
	return *l.SupplierName
}

// Phone returns the joined supplier phone, or "".
func (l LineRow) Phone() string {
	if l.SupplierPhone == nil {
		return ""
	}
	return *l.SupplierPhone
}

// Email returns the joined supplier email, or "".
func (l LineRow) Email() string {
	if l.SupplierEmail == nil {
		return ""
	}
	return *l.SupplierEmail
}
