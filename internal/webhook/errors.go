package webhook

import "errors"

// Error taxonomy for backend calls. Callers classify with errors.Is.
var (
	// ErrBackendMisconfigured indicates the backend accepted the request
	// for background execution and returned no synchronous payload. This
	// is a configuration defect on the backend side, never transient.
	ErrBackendMisconfigured = errors.New("backend workflow runs in background mode: reconfigure the workflow to respond to the webhook instead of replying \"Workflow was started\"")

	// ErrRateLimited indicates HTTP 429. Retryable after a backoff; the
	// client does not retry on its own.
	ErrRateLimited = errors.New("rate limit exceeded: please wait a moment before trying again")

	// ErrUnavailable indicates a 5xx response, a network failure, or a
	// timeout. The caller may retry.
	ErrUnavailable = errors.New("failed to connect to the blog generator service")

	// ErrBadRequest indicates a non-429 4xx response. Not retryable for
	// this request.
	ErrBadRequest = errors.New("backend rejected the request")

	// ErrCancelled indicates the caller aborted the in-flight request.
	ErrCancelled = errors.New("generation cancelled")
)
