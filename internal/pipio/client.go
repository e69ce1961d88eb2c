package pipio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"avatarstudio/internal/infra"
)

// ErrMissingAPIKey indicates that a call was attempted without credentials.
var ErrMissingAPIKey = errors.New("pipio: api key is required")

const defaultGenerateURL = "https://generate.pipio.ai/single-clip"
const defaultStatusURL = "https://generate.pipio.ai/jobs/{job_id}"

// Options configures the Pipio API client.
type Options struct {
	GenerateURL     string
	StatusURL       string // must contain the {job_id} placeholder
	GenerateTimeout time.Duration
	StatusTimeout   time.Duration
	PollInterval    time.Duration
	PollTimeout     time.Duration
	HTTPClient      *http.Client
	Logger          *infra.Logger
}

// Client performs HTTP calls against the Pipio generation and job-status
// endpoints. The credential is supplied per call, not held by the client.
type Client struct {
	generateURL     string
	statusURL       string
	generateTimeout time.Duration
	statusTimeout   time.Duration
	pollInterval    time.Duration
	pollTimeout     time.Duration
	httpClient      *http.Client
	logger          *infra.Logger
}

// CallResult carries the HTTP status and the decoded body of a single API
// call. Body is always non-nil: unparseable responses are wrapped under a
// raw_text key so diagnostics survive schema drift.
type CallResult struct {
	StatusCode int
	Body       Document
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	generateURL := strings.TrimSpace(opts.GenerateURL)
	if generateURL == "" {
		generateURL = defaultGenerateURL
	}
	statusURL := strings.TrimSpace(opts.StatusURL)
	if statusURL == "" {
		statusURL = defaultStatusURL
	}
	generateTimeout := opts.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = 60 * time.Second
	}
	statusTimeout := opts.StatusTimeout
	if statusTimeout <= 0 {
		statusTimeout = 30 * time.Second
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	pollTimeout := opts.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 180 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		generateURL:     generateURL,
		statusURL:       statusURL,
		generateTimeout: generateTimeout,
		statusTimeout:   statusTimeout,
		pollInterval:    pollInterval,
		pollTimeout:     pollTimeout,
		httpClient:      httpClient,
		logger:          logger,
	}
}

// Generate submits a single-clip generation request. A non-2xx reply is not
// an error: the result carries the status code and whatever diagnostic body
// was returned. The returned error covers transport-level failures only.
func (c *Client) Generate(ctx context.Context, apiKey string, payload Document) (*CallResult, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pipio: encode request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.generateURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pipio: build request: %w", err)
	}
	setHeaders(req, apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pipio: generate request: %w", err)
	}
	defer resp.Body.Close()

	result := &CallResult{StatusCode: resp.StatusCode, Body: decodeBody(resp.Body)}
	c.logger.Debug().
		Int("status_code", resp.StatusCode).
		Msg("pipio: generate response received")
	return result, nil
}

// JobStatus fetches the current status payload for a job.
func (c *Client) JobStatus(ctx context.Context, apiKey, jobID string) (*CallResult, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	callCtx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.statusURLFor(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("pipio: build status request: %w", err)
	}
	setHeaders(req, apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pipio: status request: %w", err)
	}
	defer resp.Body.Close()

	return &CallResult{StatusCode: resp.StatusCode, Body: decodeBody(resp.Body)}, nil
}

func (c *Client) statusURLFor(jobID string) string {
	return strings.ReplaceAll(c.statusURL, "{job_id}", url.PathEscape(jobID))
}

func setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Key "+apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// decodeBody reads a response body as JSON, falling back to a raw_text
// wrapper when the payload is not a JSON object.
func decodeBody(r io.Reader) Document {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{"raw_text": ""}
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return Document{"raw_text": string(raw)}
	}
	return doc
}
