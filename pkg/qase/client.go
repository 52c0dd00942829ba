// Package qase is a minimal client for the Qase-compatible tracking API used
// by the sync workflow: listing cases and results, fetching single cases, and
// posting results into a run. Requests carry token-header auth and are retried
// with exponential backoff on transport errors and server-side failures.
package qase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/casebridge/internal/logging"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.qase.io/v1"

// Default request behavior. Overridable via Options.
const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
	DefaultBackoff = 500 * time.Millisecond
)

// ErrNotFound is returned when the API reports a missing entity.
var ErrNotFound = errors.New("qase: not found")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qase: api error: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to one API host with one token.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	retries int
	backoff time.Duration
	logger  *log.Logger
}

// Options configures a Client. Token is required.
type Options struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string

	// Token is the API token sent in the Token header.
	Token string

	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration

	// Retries is the number of retry attempts after a failed request.
	// Negative disables retries; zero means DefaultRetries.
	Retries int

	// Backoff is the initial retry delay, doubled per attempt.
	// Zero means DefaultBackoff.
	Backoff time.Duration

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client

	// Logger receives debug-level request logging. Nil means the package
	// default logger.
	Logger *log.Logger
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, errors.New("qase: api token is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}

	retries := opts.Retries
	switch {
	case retries < 0:
		retries = 0
	case retries == 0:
		retries = DefaultRetries
	}

	backoff := opts.Backoff
	if backoff == 0 {
		backoff = DefaultBackoff
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		baseURL: baseURL,
		token:   opts.Token,
		httpc:   httpc,
		retries: retries,
		backoff: backoff,
		logger:  logger,
	}, nil
}

// envelope is the standard API response wrapper.
type envelope struct {
	Status bool            `json:"status"`
	Result json.RawMessage `json:"result"`
}

// get issues a GET and decodes the result member into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// post issues a POST with a JSON body and decodes the result member into out.
// A nil out discards the result.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = encoded
	}

	var lastErr error
	delay := c.backoff

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request",
				logging.FieldMethod, method,
				logging.FieldURL, reqURL,
				logging.FieldAttempt, attempt,
			)
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}

		err := c.once(ctx, method, reqURL, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
	}

	return fmt.Errorf("%s %s failed after %d attempts: %w", method, reqURL, c.retries+1, lastErr)
}

func (c *Client) once(ctx context.Context, method, reqURL string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, reqURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, reqURL, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Result == nil {
		return fmt.Errorf("%s %s: %w", method, reqURL, ErrNotFound)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

const maxErrorBody = 512

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// retryable reports whether the request should be attempted again: transport
// errors, 429, and 5xx qualify; everything else is final.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport-level failure.
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("request cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Cases lists every case in the project, following pagination to the end.
func (c *Client) Cases(ctx context.Context, project string) ([]Case, error) {
	return listAll[Case](ctx, c, "/case/"+url.PathEscape(project))
}

// Case fetches a single case by ID.
func (c *Client) Case(ctx context.Context, project string, caseID int) (*Case, error) {
	var result Case
	path := "/case/" + url.PathEscape(project) + "/" + strconv.Itoa(caseID)
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Results lists every result in the project, regardless of run. Run-scoped
// endpoints do not return UI-generated results, so callers filter by run ID
// themselves.
func (c *Client) Results(ctx context.Context, project string) ([]Result, error) {
	return listAll[Result](ctx, c, "/result/"+url.PathEscape(project))
}

// PostResult creates a result in the given run.
func (c *Client) PostResult(ctx context.Context, project string, runID int, payload ResultPayload) error {
	path := "/result/" + url.PathEscape(project) + "/" + strconv.Itoa(runID)
	return c.post(ctx, path, payload, nil)
}
