package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/diewo77/gf-server/auth"
	"github.com/diewo77/gf-server/httpx"
	"github.com/diewo77/gf-server/internal/models"
	"github.com/diewo77/gf-server/internal/services"
	"github.com/diewo77/gf-server/validation"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Authenticator checks a tenant's id / api key pair.
type Authenticator interface {
	Authenticate(ctx context.Context, clientID, apiKey string) (*models.Client, error)
}

// Ingester stores a batch of lines for a tenant.
type Ingester interface {
	Ingest(ctx context.Context, clientID string, items []services.LineInput) (int, error)
}

type credentials struct {
	ClientID string `json:"client_id" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
}

var (
	errNoLines      = errors.New("no_lines")
	errInvalidLines = errors.New("invalid_lines")
)

type UploadHandler struct {
	auth     Authenticator
	ingest   Ingester
	maxBytes int64
	log      *zap.Logger
}

func NewUploadHandler(a Authenticator, ing Ingester, maxBytes int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{auth: a, ingest: ing, maxBytes: maxBytes, log: log}
}

// Upload handles POST /api/upload_lines. Credentials are checked before the
// lines; nothing is written unless the whole batch is stored.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(zap.String("request_id", chimw.GetReqID(r.Context())))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}

	creds := credentials{
		ClientID: stringField(fields["client_id"]),
		APIKey:   stringField(fields["api_key"]),
	}
	if v := validation.Struct(creds); !v.Empty() {
		log.Info("upload rejected",
			zap.String("reason", "missing credentials"),
			zap.Bool("client_id", !v.Has("client_id")),
			zap.Bool("api_key", !v.Has("api_key")))
		httpx.Fail(w, http.StatusUnauthorized, auth.ErrAuthFailed.Error())
		return
	}
	client, err := h.auth.Authenticate(r.Context(), creds.ClientID, creds.APIKey)
	if errors.Is(err, auth.ErrAuthFailed) {
		log.Info("upload rejected", zap.String("reason", "auth_failed"), zap.String("client_id", creds.ClientID))
		httpx.Fail(w, http.StatusUnauthorized, auth.ErrAuthFailed.Error())
		return
	}
	if err != nil {
		log.Error("authenticate", zap.Error(err))
		httpx.Fail(w, http.StatusInternalServerError, "server_error")
		return
	}

	items, err := decodeLines(fields["lines"])
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.ingest.Ingest(r.Context(), client.ID, items)
	if err != nil {
		log.Error("ingest", zap.String("client_id", client.ID), zap.Error(err))
		httpx.Fail(w, http.StatusInternalServerError, services.ErrSaveFailed.Error())
		return
	}
	httpx.Saved(w, saved)
}

// stringField returns raw as a string, or "" when it is absent or not a
// JSON string. The value is not trimmed: the api key must match exactly.
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// decodeLines returns errNoLines when raw is not a non-empty array and
// errInvalidLines when an element is not a well-formed line object.
func decodeLines(raw json.RawMessage) ([]services.LineInput, error) {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil || len(elems) == 0 {
		return nil, errNoLines
	}
	items := make([]services.LineInput, len(elems))
	for i, elem := range elems {
		trimmed := strings.TrimSpace(string(elem))
		if !strings.HasPrefix(trimmed, "{") {
			return nil, errInvalidLines
		}
		if err := json.Unmarshal(elem, &items[i]); err != nil {
			return nil, errInvalidLines
		}
	}
	return items, nil
}
