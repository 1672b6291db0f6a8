package main

import (
	"io/fs"
	"net/http"
	"net/url"

	"github.com/diewo77/gf-server/internal/config"
	"github.com/diewo77/gf-server/internal/handlers"
	mw "github.com/diewo77/gf-server/internal/middleware"
	"github.com/diewo77/gf-server/internal/policy"
	"github.com/diewo77/gf-server/internal/services"
	"github.com/diewo77/gf-server/view"
	"github.com/diewo77/gf-server/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	router chi.Router
	db     *gorm.DB
	cfg    *config.Config
	log    *zap.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg *config.Config, log *zap.Logger) *App {
	app := &App{
		router: chi.NewRouter(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}
	view.SetLangResolver(mw.LangFrom)
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	gate := policy.NewTenantGate(a.db)
	catalog := services.NewCatalogService(a.db)
	upload := handlers.NewUploadHandler(gate, services.NewIngestService(a.db, a.log), a.cfg.MaxUploadBytes, a.log)
	lines := handlers.NewLineHandler(catalog, a.log)
	suppliers := handlers.NewSupplierHandler(catalog, a.log)
	health := handlers.NewHealthHandler(a.db, a.log)

	r := a.router
	r.Use(mw.RequestID, chimw.RealIP, mw.AccessLog(a.log), chimw.Recoverer)

	r.Get("/healthz", health.Healthz)

	// Ingestion API
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit(a.cfg.UploadRateLimit))
		r.Post("/upload_lines", upload.Upload)
	})

	// Browsing UI
	r.Group(func(r chi.Router) {
		r.Use(mw.SecureHeaders(a.cfg.IsProduction(), a.log), mw.Prefs)
		r.Get("/", a.home)
		r.Route("/client/{client_id}", func(r chi.Router) {
			r.Use(gate.RequireTenant)
			r.Get("/lines", lines.List)
			r.Get("/line/{id}", lines.View)
			r.Get("/supplier/{id}", suppliers.View)
		})
	})

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

// home sends the browser to the seeded tenant's lines.
func (a *App) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/client/"+url.PathEscape(a.cfg.SeedClientID)+"/lines", http.StatusFound)
}
