package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/gf-server/internal/db"
	"github.com/diewo77/gf-server/internal/models"
	"github.com/diewo77/gf-server/internal/policy"
	"github.com/diewo77/gf-server/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testMaxBytes = 4096

type fixture struct {
	db     *gorm.DB
	router http.Handler
}

func setup(t *testing.T) *fixture {
	t.Helper()
	d, err := gorm.Open(db.SQLiteDialector("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d, db.Target{Driver: db.DriverSQLite}, false))
	_, err = db.Seed(d, db.SeedClient{ID: "LOCAL-TEST", Name: "Test Local Client", APIKey: "TESTKEY123"})
	require.NoError(t, err)

	log := zap.NewNop()
	gate := policy.NewTenantGate(d)
	catalog := services.NewCatalogService(d)
	upload := NewUploadHandler(gate, services.NewIngestService(d, log), testMaxBytes, log)
	lines := NewLineHandler(catalog, log)
	suppliers := NewSupplierHandler(catalog, log)

	r := chi.NewRouter()
	r.Post("/api/upload_lines", upload.Upload)
	r.Get("/healthz", NewHealthHandler(d, log).Healthz)
	r.Route("/client/{client_id}", func(r chi.Router) {
		r.Use(gate.RequireTenant)
		r.Get("/lines", lines.List)
		r.Get("/line/{id}", lines.View)
		r.Get("/supplier/{id}", suppliers.View)
	})
	return &fixture{db: d, router: r}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) lineCount(t *testing.T) int64     { return f.count(t, &models.Line{}) }
func (f *fixture) supplierCount(t *testing.T) int64 { return f.count(t, &models.Supplier{}) }
