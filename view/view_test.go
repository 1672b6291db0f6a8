package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/gf-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLinesPage(t *testing.T) {
	ResetForTests()
	name := "Amin Auto"
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/client/LOCAL-TEST/lines", nil)
	err := Render(rec, req, "lines.html", map[string]any{
		"ClientID": "LOCAL-TEST",
		"Client":   &models.Client{ID: "LOCAL-TEST", Name: "Test Local Client"},
		"Query":    "",
		"Lines":    []models.LineRow{{ID: 7, Reference: "0986494123", SupplierName: &name}},
	})
	require.NoError(t, err)
	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `<html lang="fr">`)
	assert.Contains(t, body, "Amin Auto")
	assert.Contains(t, body, "Sans marque")
	assert.Contains(t, body, "/client/LOCAL-TEST/line/7")
	assert.Contains(t, body, "Test Local Client")
	assert.Contains(t, body, "/static/app.css?v=")
}

func TestRenderUsesRequestLanguage(t *testing.T) {
	ResetForTests()
	t.Cleanup(func() { SetLangResolver(func(*http.Request) string { return "fr" }) })
	SetLangResolver(func(r *http.Request) string { return r.URL.Query().Get("lang") })

	render := func(lang string) string {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?lang="+lang, nil)
		require.NoError(t, Render(rec, req, "lines.html", map[string]any{"ClientID": "X", "Lines": []models.LineRow{}}))
		return rec.Body.String()
	}
	// same cached template, different languages
	assert.Contains(t, render("en"), "No lines to show yet.")
	assert.Contains(t, render("fr"), "Aucune ligne à afficher")
}

func TestRenderUnknownTemplate(t *testing.T) {
	ResetForTests()
	rec := httptest.NewRecorder()
	err := Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "nope.html", nil)
	assert.Error(t, err)
	assert.Zero(t, rec.Body.Len())
}

func TestAssetURL(t *testing.T) {
	ResetForTests()
	u := assetURL("app.js")
	assert.True(t, strings.HasPrefix(u, "/static/app.js?v="))
	assert.Equal(t, u, assetURL("app.js"))
	assert.Equal(t, "/static/missing.css", assetURL("missing.css"))
}
