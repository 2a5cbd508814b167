// Package stream implements the low-latency SSE path to the generation
// backend. The client walks a small state machine (connecting, receiving,
// then completed/failed/timed out) and emits incremental partial-document
// updates as they arrive. It never falls back on its own: failures are
// reported as typed errors and the orchestrator decides whether to retry
// over the blocking transport, so one logical request performs at most
// one transport attempt.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/log"
)

var (
	// ErrStreamTimeout indicates no terminal event arrived in time.
	// The orchestrator recovers by falling back to the transport client.
	ErrStreamTimeout = errors.New("stream timeout: no terminal event from backend")

	// ErrStreamFailed indicates a transport-level channel error or an
	// explicit error event from the backend.
	ErrStreamFailed = errors.New("stream failed")
)

// webhookPathSegment and its stream variant. The stream endpoint is the
// webhook endpoint with the path segment swapped.
const (
	webhookPathSegment = "/webhook/"
	streamPathSegment  = "/webhook-stream/"
)

// event is one inbound SSE frame payload.
type event struct {
	Type    string             `json:"type"`
	Content blog.PartialUpdate `json:"content"`
	Message string             `json:"message"`
}

// Event types carried in the stream.
const (
	eventPartial  = "partial"
	eventComplete = "complete"
	eventError    = "error"
)

// OnPartial is invoked for each partial update, in arrival order.
type OnPartial func(blog.PartialUpdate)

// Config contains the required parameters for a Client.
type Config struct {
	// Endpoint is the webhook URL; the stream variant is derived from it.
	Endpoint string

	// Timeout bounds the whole stream: if no complete or error event
	// arrives before it elapses, the call fails with ErrStreamTimeout.
	Timeout time.Duration

	Logger log.Logger

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// Client consumes the backend's SSE stream for one request at a time.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   log.Logger
}

// New creates a stream client for the given backend endpoint.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("webhook endpoint is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No overall client timeout: the stream stays open across
		// events and is bounded by the per-call context instead.
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint: StreamEndpoint(cfg.Endpoint),
		timeout:  timeout,
		http:     httpClient,
		logger:   cfg.Logger,
	}, nil
}

// StreamEndpoint derives the SSE endpoint from a webhook endpoint by
// swapping the webhook path segment for its stream variant. Endpoints
// without the segment are used unchanged.
func StreamEndpoint(endpoint string) string {
	return strings.Replace(endpoint, webhookPathSegment, streamPathSegment, 1)
}

// Stream opens the event channel for the request and accumulates partial
// updates into a post until a terminal event arrives. onPartial (may be
// nil) is invoked per update in arrival order.
func (c *Client) Stream(ctx context.Context, req blog.Request, onPartial OnPartial) (*blog.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.connect(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	post := blog.NewPost()
	if req.Options != nil && req.Options.Keywords != nil {
		post.Keywords = req.Options.Keywords
	}

	reader := bufio.NewReader(resp.Body)
	var data strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && data.Len() == 0 {
				// Channel closed without a terminal event.
				return nil, fmt.Errorf("%w: connection closed before completion", ErrStreamFailed)
			}
			return nil, c.classify(ctx, err)
		}

		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "data:"):
			// Multiple data lines in one event join with a newline.
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case line == "":
			if data.Len() == 0 {
				continue
			}
			payload := data.String()
			data.Reset()

			done, err := c.dispatch(payload, post, onPartial)
			if err != nil {
				return nil, err
			}
			if done {
				post.FinalizeCounts()
				return post, nil
			}
		default:
			// event:/id:/retry: fields and comments are ignored; only
			// the data payload carries the typed event.
		}
	}
}

// connect opens the SSE channel, passing session id and topic as query
// parameters.
func (c *Client) connect(ctx context.Context, req blog.Request) (*http.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing stream endpoint: %v", ErrStreamFailed, err)
	}
	q := u.Query()
	q.Set("sessionId", req.SessionID)
	q.Set("topic", req.ChatInput)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building stream request: %v", ErrStreamFailed, err)
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: stream endpoint returned status %d", ErrStreamFailed, resp.StatusCode)
	}
	c.logger.Debug("stream connected", "session_id", req.SessionID)
	return resp, nil
}

// dispatch handles one event payload. A malformed payload is logged and
// skipped: one bad frame must not fail the whole stream.
func (c *Client) dispatch(payload string, post *blog.Post, onPartial OnPartial) (done bool, err error) {
	var ev event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		c.logger.Warn("ignoring malformed stream event", "error", err, "payload_len", len(payload))
		return false, nil
	}

	switch ev.Type {
	case eventPartial:
		ev.Content.Apply(post)
		if onPartial != nil {
			onPartial(ev.Content)
		}
		return false, nil
	case eventComplete:
		return true, nil
	case eventError:
		return false, fmt.Errorf("%w: %s", ErrStreamFailed, ev.Message)
	default:
		c.logger.Warn("ignoring stream event with unknown type", "type", ev.Type)
		return false, nil
	}
}

// classify maps channel errors: deadline → timeout, caller cancellation
// passes through, anything else is a stream failure.
func (c *Client) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrStreamTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return context.Canceled
	default:
		return fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}
}
