package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/gf-server/internal/config"
	"github.com/diewo77/gf-server/internal/db"
	"github.com/diewo77/gf-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const localUpload = `{
	"client_id": "LOCAL-TEST",
	"api_key": "TESTKEY123",
	"lines": [{
		"reference": "0986494123",
		"designation": "Plaquettes de frein avant",
		"marque": "PEUGEOT",
		"prix": 3500,
		"fournisseur": "Amin Auto",
		"date": "2024-05-01"
	}]
}`

func newTestApp(t *testing.T) (*App, *gorm.DB) {
	t.Helper()
	d, err := gorm.Open(db.SQLiteDialector("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d, db.Target{Driver: db.DriverSQLite}, false))
	_, err = db.Seed(d, db.SeedClient{ID: "LOCAL-TEST", Name: "Test Local Client", APIKey: "TESTKEY123"})
	require.NoError(t, err)
	cfg := &config.Config{
		Env:             "development",
		SeedClientID:    "LOCAL-TEST",
		UploadRateLimit: 1000,
		MaxUploadBytes:  1 << 20,
	}
	return NewApp(d, cfg, zap.NewNop()), d
}

func do(t *testing.T, app *App, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestE2E_UploadThenBrowse(t *testing.T) {
	app, _ := newTestApp(t)

	rec := do(t, app, http.MethodPost, "/api/upload_lines", localUpload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ok":true,"saved":1}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(t, app, http.MethodGet, "/client/LOCAL-TEST/lines", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0986494123")
	assert.Contains(t, rec.Body.String(), "Amin Auto")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	for _, q := range []string{"PEUGEOT", "peugeot"} {
		rec = do(t, app, http.MethodGet, "/client/LOCAL-TEST/lines?q="+url.QueryEscape(q), "")
		assert.Contains(t, rec.Body.String(), "0986494123", q)
	}
	rec = do(t, app, http.MethodGet, "/client/LOCAL-TEST/lines?q=brembo", "")
	assert.NotContains(t, rec.Body.String(), "0986494123")
}

func TestE2E_SupplierIsAminAuto(t *testing.T) {
	app, d := newTestApp(t)
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, "/api/upload_lines", localUpload).Code)

	var s models.Supplier
	require.NoError(t, d.Where("client_id = ?", "LOCAL-TEST").First(&s).Error)
	assert.Equal(t, "Amin Auto", s.Code)
	assert.Equal(t, "Amin Auto", s.Name)

	// a second batch with the same supplier keeps one row
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, "/api/upload_lines", localUpload).Code)
	var n int64
	d.Model(&models.Supplier{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestE2E_WrongKeyWritesNothing(t *testing.T) {
	app, d := newTestApp(t)
	body := strings.Replace(localUpload, "TESTKEY123", "WRONGKEY", 1)

	rec := do(t, app, http.MethodPost, "/api/upload_lines", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"auth_failed"}`, rec.Body.String())

	var lines, sups int64
	d.Model(&models.Line{}).Count(&lines)
	d.Model(&models.Supplier{}).Count(&sups)
	assert.Zero(t, lines)
	assert.Zero(t, sups)
}

func TestE2E_NotFoundPages(t *testing.T) {
	app, _ := newTestApp(t)

	rec := do(t, app, http.MethodGet, "/client/LOCAL-TEST/line/99999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, app, http.MethodGet, "/client/UNKNOWN/lines", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Client not found\n", rec.Body.String())
}

func TestE2E_HomeRedirectsToSeedClient(t *testing.T) {
	app, _ := newTestApp(t)
	rec := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/client/LOCAL-TEST/lines", rec.Header().Get("Location"))
}

func TestE2E_EnglishUI(t *testing.T) {
	app, _ := newTestApp(t)
	rec := do(t, app, http.MethodGet, "/client/LOCAL-TEST/lines?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Contains(t, rec.Body.String(), "No lines to show yet.")
}

func TestE2E_StaticAssets(t *testing.T) {
	app, _ := newTestApp(t)
	rec := do(t, app, http.MethodGet, "/static/app.css", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--accent")
}

func TestE2E_Healthz(t *testing.T) {
	app, _ := newTestApp(t)
	rec := do(t, app, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
	assert.NotNil(t, root.Flags().Lookup(envFileFlag))
}
