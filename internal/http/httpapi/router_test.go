package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"avatarstudio/internal/http/handlers"
	"avatarstudio/internal/infra"
	"avatarstudio/internal/metrics"
	"avatarstudio/internal/middleware"
	"avatarstudio/internal/session"
	"avatarstudio/internal/studio"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, studio.GenerationRequest, string) (*studio.Outcome, error) {
	return &studio.Outcome{Status: "completed", ResultURL: "https://cdn.test/v.mp4"}, nil
}

func newTestRouter() http.Handler {
	logger := infra.Logger(zerolog.New(io.Discard))
	app := handlers.NewApp(stubGenerator{}, session.NewStore(5), nil, logger, "key")
	cfg := &infra.Config{RateLimitPerMin: 100}
	return NewRouter(app, cfg, metrics.New().Handler())
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/v1/healthz", "", http.StatusOK},
		{http.MethodGet, "/v1/templates", "", http.StatusOK},
		{http.MethodPost, "/v1/videos/generate", `{"actor_id":"a","voice_id":"v","script":"s"}`, http.StatusOK},
		{http.MethodGet, "/v1/history", "", http.StatusOK},
		{http.MethodGet, "/v1/history/stats", "", http.StatusOK},
		{http.MethodDelete, "/v1/history", "", http.StatusNoContent},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/v1/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s = %d, want %d (body %s)", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestRouterSessionFlowsThroughHistory(t *testing.T) {
	router := newTestRouter()

	// Generate mints a session.
	req := httptest.NewRequest(http.MethodPost, "/v1/videos/generate",
		strings.NewReader(`{"actor_id":"a","voice_id":"v","script":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	sessionID := rec.Header().Get(middleware.SessionHeader)
	if sessionID == "" {
		t.Fatalf("expected session header on generate response")
	}

	// The same session sees its entry in the history.
	histReq := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	histReq.Header.Set(middleware.SessionHeader, sessionID)
	histRec := httptest.NewRecorder()
	router.ServeHTTP(histRec, histReq)
	if !strings.Contains(histRec.Body.String(), "https://cdn.test/v.mp4") {
		t.Fatalf("history body = %s, want recorded outcome", histRec.Body.String())
	}

	// Another session does not.
	otherReq := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	otherRec := httptest.NewRecorder()
	router.ServeHTTP(otherRec, otherReq)
	if strings.Contains(otherRec.Body.String(), "cdn.test") {
		t.Fatalf("fresh session saw another session's history")
	}
}
