package handlers

import (
	"net/http"
	"time"

	"avatarstudio/internal/history"
	"avatarstudio/internal/middleware"
	"avatarstudio/internal/studio"
)

type historyItem struct {
	JobID         string    `json:"job_id,omitempty"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	Category      string    `json:"category"`
	ScriptPreview string    `json:"script_preview"`
	ResultURL     string    `json:"result_url,omitempty"`
	ActorID       string    `json:"actor_id"`
	VoiceID       string    `json:"voice_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryList returns the session's recorded outcomes, most recent first.
// Reads peek at the store rather than allocating a ledger, so polling for
// history never creates sessions on its own.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	sessionID, ledger := a.Sessions.Peek(middleware.SessionIDFromContext(r.Context()))
	w.Header().Set(middleware.SessionHeader, sessionID)

	var entries []history.Entry
	if ledger != nil {
		entries = ledger.List()
	}
	items := make([]historyItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyItem{
			JobID:         entry.JobID,
			Status:        entry.Status,
			StatusLabel:   studio.StatusLabel(entry.Status),
			Category:      studio.StatusCategory(entry.Status),
			ScriptPreview: entry.ScriptPreview,
			ResultURL:     entry.ResultURL,
			ActorID:       entry.ActorID,
			VoiceID:       entry.VoiceID,
			CreatedAt:     entry.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"session_id": sessionID, "items": items})
}

// HistoryClear wipes the session's ledger, entries and counters both.
// Clearing a session that was never recorded is a no-op.
func (a *App) HistoryClear(w http.ResponseWriter, r *http.Request) {
	sessionID, ledger := a.Sessions.Peek(middleware.SessionIDFromContext(r.Context()))
	w.Header().Set(middleware.SessionHeader, sessionID)
	if ledger != nil {
		ledger.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}

// HistoryStats returns the session's aggregate counters.
func (a *App) HistoryStats(w http.ResponseWriter, r *http.Request) {
	sessionID, ledger := a.Sessions.Peek(middleware.SessionIDFromContext(r.Context()))
	w.Header().Set(middleware.SessionHeader, sessionID)
	if ledger == nil {
		a.json(w, http.StatusOK, history.Stats{})
		return
	}
	a.json(w, http.StatusOK, ledger.Stats())
}
