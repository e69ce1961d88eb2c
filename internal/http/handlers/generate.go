package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"avatarstudio/internal/history"
	"avatarstudio/internal/middleware"
	"avatarstudio/internal/pipio"
	"avatarstudio/internal/studio"
)

// DryRunStatus marks history entries recorded without any network call.
const DryRunStatus = "DRY RUN"

type generateRequest struct {
	ActorID     string         `json:"actor_id"`
	VoiceID     string         `json:"voice_id"`
	Script      string         `json:"script"`
	AspectRatio string         `json:"aspect_ratio,omitempty"`
	Resolution  string         `json:"resolution,omitempty"`
	Extras      map[string]any `json:"extras,omitempty"`
	DryRun      bool           `json:"dry_run,omitempty"`
}

type generateResponse struct {
	JobID       string         `json:"job_id,omitempty"`
	ResultURL   string         `json:"result_url,omitempty"`
	Status      string         `json:"status"`
	StatusLabel string         `json:"status_label"`
	TimedOut    bool           `json:"timed_out,omitempty"`
	Diagnostic  string         `json:"diagnostic,omitempty"`
	RawPayload  pipio.Document `json:"raw_payload,omitempty"`
}

// GenerateVideo runs one end-to-end generation synchronously. The handler
// blocks until the job reaches a terminal state or the polling budget runs
// out, then records the outcome into the session's ledger.
func (a *App) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	genReq := studio.GenerationRequest{
		ActorID:     req.ActorID,
		VoiceID:     req.VoiceID,
		Script:      req.Script,
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
		Extras:      req.Extras,
	}
	apiKey := a.credential(r)

	sessionID, ledger := a.Sessions.Ledger(middleware.SessionIDFromContext(r.Context()))
	w.Header().Set(middleware.SessionHeader, sessionID)

	if req.DryRun {
		if err := studio.Validate(genReq, apiKey); err != nil {
			a.error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		ledger.Record(history.Entry{
			Status:        DryRunStatus,
			ScriptPreview: req.Script,
			ActorID:       req.ActorID,
			VoiceID:       req.VoiceID,
		})
		a.json(w, http.StatusOK, generateResponse{
			Status:      DryRunStatus,
			StatusLabel: studio.StatusLabel(DryRunStatus),
			RawPayload:  genReq.Payload(),
		})
		return
	}

	start := time.Now()
	outcome, err := a.Generator.Generate(r.Context(), genReq, apiKey)
	if err != nil {
		if errors.Is(err, studio.ErrValidation) {
			a.error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
		return
	}
	a.Metrics.ObserveGeneration(outcome.Status, time.Since(start).Seconds())

	ledger.Record(history.Entry{
		JobID:         outcome.JobID,
		Status:        outcome.Status,
		ScriptPreview: req.Script,
		ResultURL:     outcome.ResultURL,
		ActorID:       req.ActorID,
		VoiceID:       req.VoiceID,
	})

	a.json(w, http.StatusOK, generateResponse{
		JobID:       outcome.JobID,
		ResultURL:   outcome.ResultURL,
		Status:      outcome.Status,
		StatusLabel: studio.StatusLabel(outcome.Status),
		TimedOut:    outcome.TimedOut,
		Diagnostic:  outcome.Diagnostic,
		RawPayload:  outcome.Payload,
	})
}
