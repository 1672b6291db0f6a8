package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/gf-server/auth"
	"github.com/diewo77/gf-server/internal/policy"
	"github.com/diewo77/gf-server/internal/services"
	"go.uber.org/zap"
)

type LineHandler struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewLineHandler(catalog *services.CatalogService, log *zap.Logger) *LineHandler {
	return &LineHandler{catalog: catalog, log: log}
}

func (h *LineHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	rows, err := h.catalog.ListLines(r.Context(), clientID, query)
	if err != nil {
		h.log.Error("list lines", zap.String("client_id", clientID), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	render(w, r, h.log, "lines.html", map[string]any{
		"ClientID": clientID,
		"Client":   policy.ClientFrom(r.Context()),
		"Query":    query,
		"Lines":    rows,
	})
}

func (h *LineHandler) View(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Line not found", http.StatusNotFound)
		return
	}

	line, err := h.catalog.GetLine(r.Context(), clientID, id)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, "Line not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("get line", zap.Uint("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	render(w, r, h.log, "line.html", map[string]any{
		"ClientID": clientID,
		"Client":   policy.ClientFrom(r.Context()),
		"Line":     line,
	})
}
