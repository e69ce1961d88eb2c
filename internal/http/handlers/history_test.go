package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"avatarstudio/internal/history"
	"avatarstudio/internal/middleware"
)

func TestHistoryListSessionIsolation(t *testing.T) {
	app := newTestApp(&fakeGenerator{})

	idA, ledgerA := app.Sessions.Ledger("")
	ledgerA.Record(history.Entry{JobID: "job-a", Status: "completed", ActorID: "a", VoiceID: "v"})
	idB, _ := app.Sessions.Ledger("")

	rec := doJSON(t, app.HistoryList, http.MethodGet, "/v1/history", "",
		map[string]string{middleware.SessionHeader: idA})
	var resp struct {
		SessionID string        `json:"session_id"`
		Items     []historyItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID != idA {
		t.Fatalf("session id = %q, want %q", resp.SessionID, idA)
	}
	if len(resp.Items) != 1 || resp.Items[0].JobID != "job-a" {
		t.Fatalf("items = %v, want session A's entry", resp.Items)
	}
	if resp.Items[0].Category != "completed" || resp.Items[0].StatusLabel != "Completed" {
		t.Fatalf("item decoration = %+v, want display fields", resp.Items[0])
	}

	recB := doJSON(t, app.HistoryList, http.MethodGet, "/v1/history", "",
		map[string]string{middleware.SessionHeader: idB})
	var respB struct {
		Items []historyItem `json:"items"`
	}
	if err := json.Unmarshal(recB.Body.Bytes(), &respB); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(respB.Items) != 0 {
		t.Fatalf("session B items = %d, want empty history", len(respB.Items))
	}
}

func TestHistoryReadsDoNotCreateSessions(t *testing.T) {
	app := newTestApp(&fakeGenerator{})

	rec := doJSON(t, app.HistoryList, http.MethodGet, "/v1/history", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(middleware.SessionHeader) == "" {
		t.Fatalf("expected a session id echoed for sessionless reads")
	}
	var resp struct {
		Items []historyItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("items = %d, want empty history", len(resp.Items))
	}

	recStats := doJSON(t, app.HistoryStats, http.MethodGet, "/v1/history/stats", "", nil)
	var stats history.Stats
	if err := json.Unmarshal(recStats.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("stats = %+v, want zero counters", stats)
	}

	recClear := doJSON(t, app.HistoryClear, http.MethodDelete, "/v1/history", "",
		map[string]string{middleware.SessionHeader: "never-recorded"})
	if recClear.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", recClear.Code)
	}

	// Idle polling must not leak ledgers into the store.
	if app.Sessions.Len() != 0 {
		t.Fatalf("sessions = %d, reads must not create any", app.Sessions.Len())
	}
}

func TestHistoryClear(t *testing.T) {
	app := newTestApp(&fakeGenerator{})
	id, ledger := app.Sessions.Ledger("")
	ledger.Record(history.Entry{Status: "completed"})
	ledger.Record(history.Entry{Status: "failed"})

	rec := doJSON(t, app.HistoryClear, http.MethodDelete, "/v1/history", "",
		map[string]string{middleware.SessionHeader: id})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(ledger.List()) != 0 {
		t.Fatalf("ledger not cleared")
	}
	if stats := ledger.Stats(); stats.Total != 0 {
		t.Fatalf("stats = %+v, want reset", stats)
	}
}

func TestHistoryStats(t *testing.T) {
	app := newTestApp(&fakeGenerator{})
	id, ledger := app.Sessions.Ledger("")
	for _, status := range []string{"completed", "completed", "failed", "queued"} {
		ledger.Record(history.Entry{Status: status})
	}

	rec := doJSON(t, app.HistoryStats, http.MethodGet, "/v1/history/stats", "",
		map[string]string{middleware.SessionHeader: id})
	var stats history.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 4 || stats.Successful != 2 || stats.Failed != 1 {
		t.Fatalf("stats = %+v, want {4 2 1}", stats)
	}
}

func TestTemplatesStableOrder(t *testing.T) {
	app := newTestApp(&fakeGenerator{})
	rec := doJSON(t, app.Templates, http.MethodGet, "/v1/templates", "", nil)

	var resp struct {
		Templates []scriptTemplate `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Templates) != 3 {
		t.Fatalf("templates = %d, want 3", len(resp.Templates))
	}
	for i := 1; i < len(resp.Templates); i++ {
		if resp.Templates[i-1].Name > resp.Templates[i].Name {
			t.Fatalf("templates not sorted: %q > %q", resp.Templates[i-1].Name, resp.Templates[i].Name)
		}
	}
}
