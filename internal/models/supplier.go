package models

import "strings"

// Supplier is reconciled by code within a client.
// (client_id, supplier_code) is unique; populated contact fields are never blanked.
type Supplier struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"type:text;not null;uniqueIndex:idx_suppliers_client_code,priority:1" json:"client_id"`
	Code     string `gorm:"column:supplier_code;type:text;uniqueIndex:idx_suppliers_client_code,priority:2" json:"code"`
	Name     string `gorm:"type:text;not null" json:"name"`

	Phone   string `gorm:"type:text" json:"phone,omitempty"`
	Email   string `gorm:"type:text" json:"email,omitempty"`
	Address string `gorm:"type:text" json:"address,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`
}

// ContactFields is the part of a supplier that later sightings may fill in.
type ContactFields struct {
	Phone   string
	Email   string
	Address string
	Notes   string
}

// Contact returns the stored contact fields, trimmed.
func (s *Supplier) Contact() ContactFields {
	return ContactFields{
		Phone:   strings.TrimSpace(s.Phone),
		Email:   strings.TrimSpace(s.Email),
		Address: strings.TrimSpace(s.Address),
		Notes:   strings.TrimSpace(s.Notes),
	}
}

// FillBlanks merges incoming values into c. A value is only taken when the
// current one is blank. It reports whether anything changed.
func (c ContactFields) FillBlanks(incoming ContactFields) (ContactFields, bool) {
	merged := ContactFields{
		Phone:   firstNonBlank(c.Phone, incoming.Phone),
		Email:   firstNonBlank(c.Email, incoming.Email),
		Address: firstNonBlank(c.Address, incoming.Address),
		Notes:   firstNonBlank(c.Notes, incoming.Notes),
	}
	return merged, merged != c
}

func firstNonBlank(current, incoming string) string {
	if current != "" {
		return current
	}
	return incoming
}
