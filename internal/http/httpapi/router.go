package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"avatarstudio/internal/http/handlers"
	"avatarstudio/internal/infra"
	"avatarstudio/internal/middleware"
)

// NewRouter assembles the HTTP API surface.
func NewRouter(app *handlers.App, cfg *infra.Config, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.Session,
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/templates", app.Templates)

	r.Route("/v1/videos", func(r chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		}
		r.Post("/generate", app.GenerateVideo)
	})

	r.Route("/v1/history", func(r chi.Router) {
		r.Get("/", app.HistoryList)
		r.Delete("/", app.HistoryClear)
		r.Get("/stats", app.HistoryStats)
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	return r
}
