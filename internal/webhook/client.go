// Package webhook implements the blocking transport client for the
// generation backend: one HTTP POST per request, a fixed status-code
// policy, and normalization of the backend's loosely-shaped payloads
// into raw text for extraction.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/extract"
	"github.com/draftforge/draftforge/internal/log"
)

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 4 << 20

// Config contains the required parameters for a Client.
type Config struct {
	// Endpoint is the webhook URL requests are POSTed to.
	Endpoint string

	// Timeout bounds each Generate call.
	Timeout time.Duration

	Logger log.Logger

	// Limiter optionally rate-limits outgoing requests. Nil disables
	// proactive limiting.
	Limiter *rate.Limiter

	// HTTPClient overrides the underlying client, mainly for tests.
	// When nil a client with Config.Timeout is used.
	HTTPClient *http.Client
}

// Client performs blocking generation calls against the webhook backend.
// It is an explicitly constructed, injectable instance: cancellation is
// carried by the per-call context, never stored on the client, so one
// call's cancel cannot affect another's in-flight request.
type Client struct {
	endpoint string
	http     *http.Client
	logger   log.Logger
	limiter  *rate.Limiter
}

// New creates a transport client for the given backend endpoint.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("webhook endpoint is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint: cfg.Endpoint,
		http:     httpClient,
		logger:   cfg.Logger,
		limiter:  cfg.Limiter,
	}, nil
}

// Generate POSTs the request to the backend and returns the extracted
// post. Failures are classified into the package error taxonomy; the
// caller decides retry policy.
func (c *Client) Generate(ctx context.Context, req blog.Request) (*blog.Post, error) {
	start := time.Now()

	raw, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	post := extract.Extract(raw)
	post.FinalizeCounts()
	if req.Options != nil && len(post.Keywords) == 0 && req.Options.Keywords != nil {
		post.Keywords = req.Options.Keywords
	}

	c.logger.Debug("webhook generation complete",
		"session_id", req.SessionID,
		"elapsed", time.Since(start),
		"word_count", post.WordCount)
	return post, nil
}

// send performs the POST and returns the normalized raw text.
func (c *Client) send(ctx context.Context, req blog.Request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", classifyTransportErr(ctx, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", classifyTransportErr(ctx, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", classifyTransportErr(ctx, fmt.Errorf("reading response: %w", err))
	}

	if err := classifyStatus(resp.StatusCode, respBody); err != nil {
		c.logger.Warn("webhook request failed",
			"status", resp.StatusCode,
			"error", err)
		return "", err
	}

	raw, backgroundAck := normalizePayload(respBody)
	if backgroundAck {
		c.logger.Error("backend replied with background acknowledgement only")
		return "", ErrBackendMisconfigured
	}
	return raw, nil
}

// classifyStatus maps HTTP status codes onto the error taxonomy.
func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return fmt.Errorf("%w: backend returned status %d", ErrUnavailable, status)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrBadRequest, status, truncate(body, 200))
	}
}

// classifyTransportErr distinguishes caller cancellation from network
// failure and timeouts.
func classifyTransportErr(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
