package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"avatarstudio/internal/infra"
	"avatarstudio/internal/metrics"
	"avatarstudio/internal/session"
	"avatarstudio/internal/studio"
)

// CredentialHeader carries the caller's Pipio API key. Forwarded verbatim;
// never validated or parsed here.
const CredentialHeader = "X-Pipio-Key"

// Generator is the orchestration surface the handlers depend on.
type Generator interface {
	Generate(ctx context.Context, req studio.GenerationRequest, apiKey string) (*studio.Outcome, error)
}

// App bundles the handler dependencies.
type App struct {
	Generator     Generator
	Sessions      *session.Store
	Metrics       *metrics.Metrics
	Logger        infra.Logger
	DefaultAPIKey string
}

// NewApp wires the handler container.
func NewApp(generator Generator, sessions *session.Store, m *metrics.Metrics, logger infra.Logger, defaultAPIKey string) *App {
	return &App{
		Generator:     generator,
		Sessions:      sessions,
		Metrics:       m,
		Logger:        logger,
		DefaultAPIKey: defaultAPIKey,
	}
}

// credential resolves the API key for a request: the caller's header wins,
// the server-configured key is the fallback.
func (a *App) credential(r *http.Request) string {
	if key := r.Header.Get(CredentialHeader); key != "" {
		return key
	}
	return a.DefaultAPIKey
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}
