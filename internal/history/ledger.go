// Package history keeps a bounded, in-memory record of past generation
// outcomes. Ledgers live for the process lifetime only; nothing is persisted.
package history

import (
	"strings"
	"sync"
	"time"

	"avatarstudio/internal/pipio"
)

// DefaultCap bounds a ledger when no explicit cap is configured.
const DefaultCap = 20

const previewLimit = 120

// Entry is one recorded generation outcome. Immutable once created.
type Entry struct {
	JobID         string    `json:"job_id,omitempty"`
	Status        string    `json:"status"`
	ScriptPreview string    `json:"script_preview"`
	ResultURL     string    `json:"result_url,omitempty"`
	ActorID       string    `json:"actor_id"`
	VoiceID       string    `json:"voice_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats are the ledger's aggregate counters. Counters only ever grow within
// a session; successful+failed never exceeds total.
type Stats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Ledger records outcomes newest-first, truncating beyond its cap.
type Ledger struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	stats   Stats
}

// NewLedger creates a ledger bounded at cap entries; non-positive caps fall
// back to DefaultCap.
func NewLedger(limit int) *Ledger {
	if limit <= 0 {
		limit = DefaultCap
	}
	return &Ledger{limit: limit}
}

// Record inserts an entry at the head and updates the counters. The status
// keyword sets decide which counter moves: success keywords increment
// successful, failure keywords increment failed, everything else counts
// toward total only.
func (l *Ledger) Record(entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.ScriptPreview = Preview(entry.ScriptPreview)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}

	l.stats.Total++
	status := strings.ToLower(entry.Status)
	switch {
	case pipio.IsSuccessStatus(status):
		l.stats.Successful++
	case pipio.IsFailureStatus(status):
		l.stats.Failed++
	}
}

// List returns the entries newest-first. The returned slice is a copy.
func (l *Ledger) List() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear resets the entries and all counters.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.stats = Stats{}
}

// Stats returns a snapshot of the aggregate counters.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Preview truncates a script to the display limit, marking truncation with
// an ellipsis. The limit counts characters, not bytes, so multibyte scripts
// keep their full 120 characters and never split mid-rune.
func Preview(script string) string {
	trimmed := strings.TrimSpace(script)
	runes := []rune(trimmed)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return trimmed
}
