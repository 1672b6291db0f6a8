// Package handlers holds the HTTP endpoints: the ingestion API and the
// read-only browsing pages.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/gf-server/view"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// pathID parses the {id} route parameter. Non-numeric and zero ids are
// reported as absent.
func pathID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, strconv.IntSize)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func render(w http.ResponseWriter, r *http.Request, log *zap.Logger, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		log.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
