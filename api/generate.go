package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/generator"
	"github.com/draftforge/draftforge/internal/webhook"
)

// GenerateHandler handles generation endpoints.
//
// Endpoints:
//   - POST /api/generate        - Blocking generation (JSON request/response)
//   - POST /api/generate/stream - Streaming generation (SSE - Server-Sent Events)
//   - POST /api/generate/cancel - Abort the in-flight generation
//   - POST /api/probe           - Connectivity probe against the backend
type GenerateHandler struct {
	gen    *generator.Generator
	prober *webhook.Client
}

// NewGenerateHandler creates a new generation handler. prober may be nil
// when no backend endpoint is configured; the probe endpoint then reports
// synthetic mode.
func NewGenerateHandler(gen *generator.Generator, prober *webhook.Client) *GenerateHandler {
	return &GenerateHandler{gen: gen, prober: prober}
}

// RegisterRoutes registers generation routes on the given mux.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	mux.HandleFunc("POST /api/generate/stream", h.handleStream)
	mux.HandleFunc("POST /api/generate/cancel", h.handleCancel)
	mux.HandleFunc("POST /api/probe", h.handleProbe)
}

// generateRequest is the JSON body of both generation endpoints.
type generateRequest struct {
	ChatID  string                  `json:"chatId"`
	Topic   string                  `json:"topic"`
	Options *blog.GenerationOptions `json:"options,omitempty"`
}

// handleGenerate runs one blocking generation and returns the post.
func (h *GenerateHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TOPIC", "topic is required")
		return
	}

	post, err := h.gen.Generate(r.Context(), req.ChatID, req.Topic, req.Options)
	if err != nil {
		writeError(w, statusFor(err), errorCode(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleCancel aborts the in-flight generation, if any.
func (h *GenerateHandler) handleCancel(w http.ResponseWriter, _ *http.Request) {
	h.gen.Cancel()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancelling"})
}

// handleProbe runs one connectivity probe against the backend.
func (h *GenerateHandler) handleProbe(w http.ResponseWriter, r *http.Request) {
	if h.prober == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "no backend endpoint configured (synthetic mode)",
		})
		return
	}
	result, err := h.prober.Probe(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "PROBE_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SSEEvent types emitted by the streaming endpoint.
//   - partial: incremental field update, a blog.PartialUpdate payload
//   - done:    the completed post
//   - error:   terminal failure {"code": "...", "message": "..."}

// handleStream runs one generation and relays partial updates onto an
// SSE stream as they arrive.
func (h *GenerateHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSSEError(w, flusher, "INVALID_REQUEST", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Topic == "" {
		writeSSEError(w, flusher, "MISSING_TOPIC", "topic is required")
		return
	}

	post, err := h.gen.GenerateStreamed(r.Context(), req.ChatID, req.Topic, req.Options, func(u blog.PartialUpdate) {
		writeSSE(w, flusher, "partial", u)
	})
	if err != nil {
		writeSSEError(w, flusher, errorCode(err), err.Error())
		return
	}
	writeSSE(w, flusher, "done", post)
}

// writeSSE writes one event frame to the SSE stream.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	payload, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}

// writeSSEError writes an error event to the SSE stream.
func writeSSEError(w http.ResponseWriter, flusher http.Flusher, code, message string) {
	writeSSE(w, flusher, "error", map[string]string{"code": code, "message": message})
}

// statusFor maps generation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, webhook.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, webhook.ErrCancelled):
		return http.StatusRequestTimeout
	case errors.Is(err, webhook.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// errorCode maps generation errors onto stable machine-readable codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, generator.ErrBusy):
		return "BUSY"
	case errors.Is(err, webhook.ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, webhook.ErrCancelled):
		return "CANCELLED"
	case errors.Is(err, webhook.ErrBackendMisconfigured):
		return "BACKEND_MISCONFIGURED"
	case errors.Is(err, webhook.ErrBadRequest):
		return "BAD_REQUEST"
	default:
		return "GENERATION_FAILED"
	}
}
