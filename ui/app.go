package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"framelens/app"
	"framelens/internal"
	"framelens/ports"
)

// App is the HTTP surface of the analysis engine. It takes samples and
// returns result records; chart drawing and upload UI live elsewhere.
type App struct {
	router  *chi.Mux
	service *app.ComparisonService
	reports ports.ReportRepository
	logger  *internal.Logger
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application and mounts its routes
func NewApp(service *app.ComparisonService, reports ports.ReportRepository) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		reports: reports,
		logger:  internal.DefaultLogger,
	}
	a.routes()
	return a
}

func (a *App) routes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/stats", a.handleStats)
		r.Post("/pacing", a.handlePacing)
		r.Post("/compare", a.handleCompare)
		r.Get("/reports", a.handleListReports)
		r.Get("/reports/{id}", a.handleGetReport)
	})
	a.router.Get("/reports/{id}", a.handleReportHTML)
	a.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Serve runs the HTTP server until it fails
func (a *App) Serve(config Config) error {
	addr := ":" + config.Port
	a.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) httpError(w http.ResponseWriter, status int, err error) {
	a.logger.Warn("request failed: %v", err)
	http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), status)
}
