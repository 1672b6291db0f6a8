package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/gf-server/internal/models"
	"gorm.io/gorm"
)

const (
	// NoCode keys a supplier that arrived with neither code nor name.
	NoCode = "NO-CODE"
	// UnknownSupplierName names the placeholder supplier of lines that carry
	// no supplier information at all.
	UnknownSupplierName = "Fournisseur inconnu"
)

// SupplierInput is the supplier object attached to an uploaded line.
type SupplierInput struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`

	// keyed is set when the decoded JSON object had at least one member,
	// even if every value was blank.
	keyed bool
}

func (in *SupplierInput) UnmarshalJSON(b []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return err
	}
	type plain SupplierInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*in = SupplierInput(p)
	in.keyed = len(members) > 0
	return nil
}

// empty reports an absent supplier: {} or a value with no field set.
func (in SupplierInput) empty() bool {
	return !in.keyed && in == SupplierInput{}
}

// key returns the (code, name) pair a supplier is stored under.
func (in SupplierInput) key() (code, name string) {
	code = firstNonBlank(strings.TrimSpace(in.Code), strings.TrimSpace(in.Name), NoCode)
	name = firstNonBlank(strings.TrimSpace(in.Name), code)
	return code, name
}

func (in SupplierInput) contact() models.ContactFields {
	return models.ContactFields{
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
}

// ReconcileSupplier returns the id of the client's supplier keyed by the
// input code, creating it on first sighting. On later sightings only blank
// contact fields are filled in; nothing populated is ever overwritten and no
// UPDATE is issued when nothing changed.
//
// The lookup and the write are not locked: two concurrent batches of the
// same client may both try to insert, in which case the unique index on
// (client_id, supplier_code) fails the later transaction.
func ReconcileSupplier(tx *gorm.DB, clientID string, in SupplierInput) (uint, error) {
	code, name := in.key()
	incoming := in.contact()

	var existing models.Supplier
	err := tx.Where("client_id = ? AND supplier_code = ?", clientID, code).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s := models.Supplier{
			ClientID: clientID,
			Code:     code,
			Name:     name,
			Phone:    incoming.Phone,
			Email:    incoming.Email,
			Address:  incoming.Address,
			Notes:    incoming.Notes,
		}
		if err := tx.Create(&s).Error; err != nil {
			return 0, fmt.Errorf("create supplier %q: %w", code, err)
		}
		return s.ID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find supplier %q: %w", code, err)
	}

	current := existing.Contact()
	merged, changed := current.FillBlanks(incoming)
	if !changed {
		return existing.ID, nil
	}
	updates := map[string]any{}
	if merged.Phone != current.Phone {
		updates["phone"] = merged.Phone
	}
	if merged.Email != current.Email {
		updates["email"] = merged.Email
	}
	if merged.Address != current.Address {
		updates["address"] = merged.Address
	}
	if merged.Notes != current.Notes {
		updates["notes"] = merged.Notes
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return 0, fmt.Errorf("update supplier %q: %w", code, err)
	}
	return existing.ID, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
