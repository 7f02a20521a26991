package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sridharshinicloud/carey-foster-bridge-new/app"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	apperrors "github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the web front end: server-rendered pages plus a small JSON API
// the simulator panel polls.
type App struct {
	router    *chi.Mux
	sim       *app.SimulatorService
	suggest   *app.SuggestionService
	reports   *app.ReportService
	templates *template.Template
	logger    *internal.Logger
}

// NewApp builds the router, templates, and middleware.
func NewApp(sim *app.SimulatorService, suggest *app.SuggestionService, reports *app.ReportService, logger *internal.Logger) (*App, error) {
	funcMap := template.FuncMap{
		"fmtOhm": func(v float64) string { return fmt.Sprintf("%.4g Ω", v) },
		"fmtCM": func(v *float64) string {
			if v == nil {
				return "—"
			}
			return fmt.Sprintf("%.2f cm", *v)
		},
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		sim:       sim,
		suggest:   suggest,
		reports:   reports,
		templates: templates,
		logger:    logger.WithPrefix("ui"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/report/{id}", a.handleReportPage)

	// Live panel API
	a.router.Get("/api/state", a.handleGetState)
	a.router.Post("/api/state", a.handleAdjust)
	a.router.Post("/api/readings/record", a.handleRecord)
	a.router.Delete("/api/readings/{id}", a.handleDeleteReading)
	a.router.Post("/api/reset", a.handleReset)
	a.router.Post("/api/reveal", a.handleReveal)

	// Collaborator + report hand-off
	a.router.Post("/api/suggestions", a.handleSuggest)
	a.router.Post("/api/report", a.handleCreateReport)
	a.router.Get("/api/report/{id}/export", a.handleExport)
}

// Router exposes the handler tree, mainly for tests.
func (a *App) Router() http.Handler { return a.router }

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.logger.Info("starting bridge simulator UI on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("encode response: %v", err)
	}
}

// writeError maps AppError codes onto HTTP statuses. Everything the
// simulator rejects is recoverable, so 4xx dominates.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeRecordingRejected:
		status = http.StatusConflict
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeExternalService:
		status = http.StatusBadGateway
	}
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
