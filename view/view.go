// Package view renders the embedded HTML templates: every page is parsed
// together with layout.html and the partials, then cached.
package view

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/diewo77/gf-server/i18n"
	"github.com/diewo77/gf-server/web"
)

var (
	templates fs.FS = web.Templates
	static    fs.FS = web.Static

	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetVersions sync.Map

	langResolver = func(_ *http.Request) string { return i18n.DefaultLang }

	partials = []string{"templates/partials/header.html", "templates/partials/field.html"}
)

// SetLangResolver allows the host app to provide a custom language resolver (e.g., reading from context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.DefaultLang
	if r != nil {
		lang = langResolver(r)
	}
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"otherLang": func() string {
			if lang == "en" {
				return "fr"
			}
			return "en"
		},
		"year":  func() int { return time.Now().Year() },
		"asset": assetURL,
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// assetURL returns /static/<rel>?v=<hash> for cache busting.
func assetURL(rel string) string {
	if v, ok := assetVersions.Load(rel); ok {
		return v.(string)
	}
	url := "/static/" + rel
	b, err := fs.ReadFile(static, path.Join("static", rel))
	if err != nil {
		return url
	}
	h := sha1.Sum(b)
	url += "?v=" + fmt.Sprintf("%x", h[:8])
	assetVersions.Store(rel, url)
	return url
}

// ResetForTests clears caches.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	assetVersions.Clear()
}

func lookup(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	files := append([]string{"templates/layout.html", path.Join("templates", name)}, partials...)
	parsed, err := template.New("layout.html").Funcs(Funcs(nil)).ParseFS(templates, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	tplCache.Lock()
	tplCache.m[name] = parsed
	tplCache.Unlock()
	return parsed, nil
}

// Render executes the page template name inside the layout and writes it
// with status 200. Nothing is written when rendering fails.
// name should be the filename (e.g., "lines.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	base, err := lookup(name)
	if err != nil {
		return err
	}
	// the cached tree is shared; request-bound funcs go on a clone
	t, err := base.Clone()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Funcs(Funcs(r)).Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
