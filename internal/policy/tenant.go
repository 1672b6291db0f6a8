package policy

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/gf-server/auth"
	"github.com/diewo77/gf-server/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type clientCtxKey struct{}

// TenantGate resolves tenants and checks their shared secret.
type TenantGate struct {
	db *gorm.DB
}

func NewTenantGate(db *gorm.DB) *TenantGate {
	return &TenantGate{db: db}
}

// Lookup returns the client with id clientID, or auth.ErrUnknownClient.
func (g *TenantGate) Lookup(ctx context.Context, clientID string) (*models.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, auth.ErrUnknownClient
	}
	var c models.Client
	err := g.db.WithContext(ctx).Where("id = ?", clientID).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.ErrUnknownClient
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Authenticate checks an id / api key pair. Unknown ids and wrong keys both
// yield auth.ErrAuthFailed; any other error comes from the database.
func (g *TenantGate) Authenticate(ctx context.Context, clientID, apiKey string) (*models.Client, error) {
	c, err := g.Lookup(ctx, clientID)
	if errors.Is(err, auth.ErrUnknownClient) {
		return nil, auth.ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyKey(c.APIKey, apiKey) {
		return nil, auth.ErrAuthFailed
	}
	return c, nil
}

// RequireTenant resolves the {client_id} route parameter. Unknown tenants get
// a plain-text 404; known ones are stored in the request context.
func (g *TenantGate) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := g.Lookup(r.Context(), chi.URLParam(r, "client_id"))
		if errors.Is(err, auth.ErrUnknownClient) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		ctx := auth.WithClientID(r.Context(), c.ID)
		ctx = context.WithValue(ctx, clientCtxKey{}, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientFrom returns the tenant stored by RequireTenant, or nil.
func ClientFrom(ctx context.Context) *models.Client {
	c, _ := ctx.Value(clientCtxKey{}).(*models.Client)
	return c
}
