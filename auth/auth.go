// Package auth holds tenant credentials: shared-secret hashing and the
// per-request tenant context.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const clientIDCtxKey = ctxKey("clientID")

var (
	// ErrAuthFailed is returned when a client id / api key pair does not match.
	ErrAuthFailed = errors.New("auth_failed")
	// ErrUnknownClient is returned when no tenant exists for an id.
	ErrUnknownClient = errors.New("client not found")
)

// HashKey returns the bcrypt hash stored in clients.api_key.
func HashKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyKey checks a presented key against the stored value.
// Rows written before keys were hashed hold the plain secret; those are
// compared in constant time.
func VerifyKey(stored, presented string) bool {
	if stored == "" || presented == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

func isBcryptHash(s string) bool {
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return false
	}
	return strings.HasPrefix(s, "$2")
}

// WithClientID stores the resolved tenant id in context.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDCtxKey, clientID)
}

// ClientIDFromContext extracts the tenant id.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDCtxKey).(string)
	return id, ok && id != ""
}
