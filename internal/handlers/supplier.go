package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/gf-server/auth"
	"github.com/diewo77/gf-server/internal/policy"
	"github.com/diewo77/gf-server/internal/services"
	"go.uber.org/zap"
)

type SupplierHandler struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewSupplierHandler(catalog *services.CatalogService, log *zap.Logger) *SupplierHandler {
	return &SupplierHandler{catalog: catalog, log: log}
}

func (h *SupplierHandler) View(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}

	supplier, err := h.catalog.GetSupplier(r.Context(), clientID, id)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("get supplier", zap.Uint("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	render(w, r, h.log, "supplier.html", map[string]any{
		"ClientID": clientID,
		"Client":   policy.ClientFrom(r.Context()),
		"Supplier": supplier,
	})
}
