package handlers

import (
	"net/http"

	"github.com/diewo77/gf-server/httpx"
	"github.com/diewo77/gf-server/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewHealthHandler(gdb *gorm.DB, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: gdb, log: log}
}

// Healthz answers {"ok":true} while the database responds.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(h.db.WithContext(r.Context())); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		httpx.Fail(w, http.StatusServiceUnavailable, "db_unavailable")
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Result{OK: true})
}
