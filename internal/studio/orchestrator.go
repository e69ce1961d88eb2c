package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"avatarstudio/internal/infra"
	"avatarstudio/internal/pipio"
)

// ErrValidation marks request errors detected before any network call.
var ErrValidation = errors.New("invalid generation request")

// GenerationClient is the slice of the Pipio client the orchestrator needs.
type GenerationClient interface {
	Generate(ctx context.Context, apiKey string, payload pipio.Document) (*pipio.CallResult, error)
	PollJob(ctx context.Context, apiKey, jobID string) pipio.PollResult
}

// Orchestrator sequences a generation call, response normalization, and job
// polling into a single terminal outcome. It does not own the history
// ledger: callers record the outcomes it produces.
type Orchestrator struct {
	client GenerationClient
	logger *infra.Logger
}

// NewOrchestrator wires an orchestrator over the given API client.
func NewOrchestrator(client GenerationClient, logger *infra.Logger) *Orchestrator {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Orchestrator{client: client, logger: logger}
}

// Generate runs one end-to-end generation. The returned error is non-nil
// only for validation failures; transport and protocol failures are normal
// terminal outcomes with an indicative status, so every attempt can be
// recorded.
func (o *Orchestrator) Generate(ctx context.Context, req GenerationRequest, apiKey string) (*Outcome, error) {
	if err := Validate(req, apiKey); err != nil {
		return nil, err
	}

	call, err := o.client.Generate(ctx, apiKey, req.Payload())
	if err != nil {
		o.logger.Error().Err(err).Msg("studio: generate request failed")
		return &Outcome{
			Status:     StatusError,
			Payload:    pipio.Document{},
			Diagnostic: err.Error(),
		}, nil
	}

	if call.StatusCode != 200 && call.StatusCode != 201 && call.StatusCode != 202 {
		o.logger.Warn().Int("status_code", call.StatusCode).Msg("studio: generation rejected")
		return &Outcome{
			Status:  fmt.Sprintf("HTTP %d", call.StatusCode),
			Payload: call.Body,
		}, nil
	}

	jobID := pipio.ExtractJobID(call.Body)
	immediateURL := pipio.ExtractResultURL(call.Body)

	// A synchronous result wins even when a job id is also present.
	if immediateURL != "" {
		o.logger.Info().Str("job_id", jobID).Msg("studio: result url returned immediately")
		return &Outcome{
			JobID:     jobID,
			ResultURL: immediateURL,
			Status:    StatusCompleted,
			Payload:   call.Body,
		}, nil
	}

	if jobID == "" {
		o.logger.Warn().Msg("studio: response carried neither job id nor result url")
		return &Outcome{
			Status:  StatusUnknown,
			Payload: call.Body,
		}, nil
	}

	o.logger.Info().Str("job_id", jobID).Msg("studio: polling job")
	poll := o.client.PollJob(ctx, apiKey, jobID)

	outcome := &Outcome{
		JobID:     jobID,
		ResultURL: pipio.ExtractResultURL(poll.Payload),
		Status:    poll.Status,
		TimedOut:  poll.TimedOut,
		Payload:   poll.Payload,
	}
	if outcome.Status == "" {
		outcome.Status = StatusUnknown
	}
	if poll.Err != nil {
		outcome.Diagnostic = poll.Err.Error()
	} else if poll.HTTPStatus != 0 && poll.HTTPStatus != 200 {
		outcome.Diagnostic = fmt.Sprintf("status endpoint returned HTTP %d", poll.HTTPStatus)
	}
	return outcome, nil
}

// Validate checks that a request and credential are complete enough to
// submit. Called by Generate before any network activity; shells reuse it
// for dry runs.
func Validate(req GenerationRequest, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("%w: api key is required", ErrValidation)
	}
	if strings.TrimSpace(req.ActorID) == "" {
		return fmt.Errorf("%w: actor id is required", ErrValidation)
	}
	if strings.TrimSpace(req.VoiceID) == "" {
		return fmt.Errorf("%w: voice id is required", ErrValidation)
	}
	if strings.TrimSpace(req.Script) == "" {
		return fmt.Errorf("%w: script must not be empty", ErrValidation)
	}
	return nil
}
