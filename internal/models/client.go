package models

// Client is a tenant: the isolated owner of supplier and line data.
// Rows are provisioned out-of-band (seed) and never mutated by the application.
type Client struct {
	ID   string `gorm:"primaryKey;type:text" json:"id"`
	Name string `gorm:"type:text" json:"name"`

	// APIKey holds the bcrypt hash of the tenant's shared secret.
	APIKey string `gorm:"column:api_key;type:text" json:"-"`
}

// DisplayName returns the client name, falling back to its id.
func (c *Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
