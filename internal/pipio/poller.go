package pipio

import (
	"context"
	"time"
)

// Terminal status keyword sets, compared lower-cased. Like the extraction
// candidates these are data: extend them when the provider grows new
// spellings of "done".
var (
	successStatuses = map[string]struct{}{
		"completed": {},
		"finished":  {},
		"success":   {},
		"done":      {},
		"complete":  {},
	}
	failureStatuses = map[string]struct{}{
		"failed": {},
		"error":  {},
	}
)

// IsSuccessStatus reports whether the normalized status is a terminal
// success keyword.
func IsSuccessStatus(status string) bool {
	_, ok := successStatuses[status]
	return ok
}

// IsFailureStatus reports whether the normalized status is a terminal
// failure keyword.
func IsFailureStatus(status string) bool {
	_, ok := failureStatuses[status]
	return ok
}

// PollResult is the terminal payload of one polling run. Transport and
// semantic failures all land here; the poller never panics or retries.
type PollResult struct {
	// Payload is the last successfully retrieved document, or the
	// diagnostic body of a non-200 reply. Never nil.
	Payload Document
	// Status is the lower-cased status extracted from Payload, "" when the
	// payload carries no recognizable status field.
	Status string
	// TimedOut is set when the polling budget was exhausted before any
	// terminal status appeared. Distinct from a failure status.
	TimedOut bool
	// HTTPStatus is non-zero when polling stopped on a non-200 reply.
	HTTPStatus int
	// Err is the transport-level failure that stopped polling, nil otherwise.
	Err error
}

// PollJob repeatedly fetches job status until a terminal keyword, a non-200
// reply, a transport failure, or the configured ceiling. It blocks the
// calling goroutine for the whole run; between checks it sleeps the fixed
// configured interval.
func (c *Client) PollJob(ctx context.Context, apiKey, jobID string) PollResult {
	start := time.Now()
	result := PollResult{Payload: Document{}}

	for {
		if time.Since(start) > c.pollTimeout {
			result.TimedOut = true
			result.Status = ExtractStatus(result.Payload)
			c.logger.Warn().
				Str("job_id", jobID).
				Dur("elapsed", time.Since(start)).
				Msg("pipio: job polling timed out")
			return result
		}

		call, err := c.JobStatus(ctx, apiKey, jobID)
		if err != nil {
			result.Err = err
			result.Status = ExtractStatus(result.Payload)
			c.logger.Error().Err(err).Str("job_id", jobID).Msg("pipio: job status request failed")
			return result
		}
		if call.StatusCode != 200 {
			result.Payload = call.Body
			result.HTTPStatus = call.StatusCode
			result.Status = ExtractStatus(result.Payload)
			c.logger.Error().
				Int("status_code", call.StatusCode).
				Str("job_id", jobID).
				Msg("pipio: status endpoint error")
			return result
		}

		result.Payload = call.Body
		result.Status = ExtractStatus(call.Body)
		if IsSuccessStatus(result.Status) || IsFailureStatus(result.Status) {
			return result
		}

		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			result.Err = ctx.Err()
			return result
		}
	}
}
