package studio

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"avatarstudio/internal/pipio"
)

// Normalized terminal statuses produced by the orchestrator. Provider
// payloads may carry other spellings; these are the values the ledger and
// the shells key off.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusUnknown   = "unknown"
	StatusError     = "error"
)

// GenerationRequest is an immutable description of one avatar-video
// submission. Extras carries provider-specific options verbatim; extras keys
// may override the base payload fields, matching the provider's loose
// contract.
type GenerationRequest struct {
	ActorID     string
	VoiceID     string
	Script      string
	AspectRatio string
	Resolution  string
	Extras      map[string]any
}

// Payload builds the wire document for the generation endpoint.
func (r GenerationRequest) Payload() pipio.Document {
	payload := pipio.Document{
		"actorId": r.ActorID,
		"voiceId": r.VoiceID,
		"script":  strings.TrimSpace(r.Script),
	}
	if r.AspectRatio != "" {
		payload["aspectRatio"] = r.AspectRatio
	}
	if r.Resolution != "" {
		payload["resolution"] = r.Resolution
	}
	for key, val := range r.Extras {
		payload[key] = val
	}
	return payload
}

// Outcome is the terminal result of one orchestrated generation. Exactly one
// of ResultURL or a polling-derived status tells the caller what happened;
// Payload retains the last raw document for inspection.
type Outcome struct {
	JobID      string
	ResultURL  string
	Status     string
	TimedOut   bool
	Payload    pipio.Document
	Diagnostic string
}

// Succeeded reports whether the outcome carries a terminal success status.
func (o *Outcome) Succeeded() bool {
	return pipio.IsSuccessStatus(strings.ToLower(o.Status))
}

// Status categories used for display grouping.
var (
	queuedStatuses     = map[string]struct{}{"queued": {}, "pending": {}, "submitted": {}}
	processingStatuses = map[string]struct{}{"processing": {}, "running": {}, "in_progress": {}}
)

// StatusCategory buckets a raw status into completed, queued, processing,
// failed, or unknown.
func StatusCategory(status string) string {
	s := strings.ToLower(status)
	switch {
	case pipio.IsSuccessStatus(s):
		return "completed"
	case pipio.IsFailureStatus(s):
		return "failed"
	default:
		if _, ok := queuedStatuses[s]; ok {
			return "queued"
		}
		if _, ok := processingStatuses[s]; ok {
			return "processing"
		}
		return "unknown"
	}
}

// StatusLabel renders a human-readable label for a raw status. Recognized
// categories get their canonical spelling; anything else is title-cased
// verbatim so provider-specific statuses stay visible.
func StatusLabel(status string) string {
	title := cases.Title(language.English)
	if status == "" {
		return "Unknown"
	}
	category := StatusCategory(status)
	if category != "unknown" {
		return title.String(category)
	}
	return title.String(status)
}

// Templates returns the canned starter scripts offered by the shells.
func Templates() map[string]string {
	return map[string]string{
		"Welcome / Intro":   "Welcome to our channel! In this short video, I'll walk you through what we do and how you can get started today.",
		"Product explainer": "In this video, you'll learn what our product does, who it's for, and how it can save you time every week.",
		"Training snippet":  "In this training, we'll cover one core concept step-by-step so you can apply it immediately in your work.",
	}
}
