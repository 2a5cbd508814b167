package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/draftforge/draftforge/internal/blog"
)

// ProbeResult reports the outcome of a diagnostic webhook probe.
type ProbeResult struct {
	Endpoint string        `json:"endpoint"`
	Status   int           `json:"status"`
	Latency  time.Duration `json:"latency"`
	Body     string        `json:"body,omitempty"`
}

// Probe sends one synthetic request to verify the backend is reachable.
// Any 2xx reply counts as success; the body is echoed back untouched for
// the operator to inspect. The caller bounds the call with ctx.
func (c *Client) Probe(ctx context.Context) (*ProbeResult, error) {
	req := blog.Request{
		ChatInput: "Test connection from draftforge",
		SessionID: fmt.Sprintf("test_%d", time.Now().UnixMilli()),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding probe request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building probe request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportErr(ctx, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	result := &ProbeResult{
		Endpoint: c.endpoint,
		Status:   resp.StatusCode,
		Latency:  time.Since(start),
		Body:     truncate(respBody, 500),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, classifyStatus(resp.StatusCode, respBody)
	}
	return result, nil
}
