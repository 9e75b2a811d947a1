package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/samphillips38/bloom-web-sub001/internal/metrics"
)

// Config holds Bloom API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a typed HTTP client for the remote Bloom API. All methods are
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Bloom API client. metrics may be nil.
func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// do issues one API request. A non-empty access token is sent as a Bearer
// credential. Network errors and 5xx responses on GETs are retried with a
// short fibonacci backoff; mutations are never retried.
func (c *Client) do(ctx context.Context, op, method, path, access string, in, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, access, in, out)
	if c.metrics != nil {
		c.metrics.ObserveUpstream(op, start, err)
	}
	if err != nil {
		return err
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path, access string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	requestID := uuid.NewString()

	attempt := func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if method == http.MethodGet {
				return retry.RetryableError(fmt.Errorf("%s %s: %w", method, path, err))
			}
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil {
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}

		apiErr := decodeError(resp)
		if resp.StatusCode >= 500 && method == http.MethodGet {
			return retry.RetryableError(apiErr)
		}
		return apiErr
	}

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	if err := retry.Do(ctx, backoff, attempt); err != nil {
		c.logger.Debug("api call failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return err
	}
	return nil
}

// decodeError extracts a display message from an error response body.
func decodeError(resp *http.Response) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}
