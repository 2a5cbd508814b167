// Package generator composes the session keeper, the stream and
// transport clients, and the extractor into one call contract:
// Generate(chatID, topic) returns a completed post. It owns the fallback
// decision logic (stream first, at most one transport attempt), the
// synthetic-response mode, cancellation, and the conversational
// placeholder lifecycle around each request.
package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/log"
	"github.com/draftforge/draftforge/internal/session"
	"github.com/draftforge/draftforge/internal/stream"
	"github.com/draftforge/draftforge/internal/synthetic"
	"github.com/draftforge/draftforge/internal/webhook"
)

// ErrBusy is returned when Generate is called while another generation
// is in flight on the same instance. Calls are rejected rather than
// interleaved to keep the placeholder and accumulator state coherent.
var ErrBusy = errors.New("a generation is already in progress")

// loadingMessage is the placeholder content shown while generating.
const loadingMessage = "Generating your blog post..."

// TransportClient is the blocking request/response path to the backend.
type TransportClient interface {
	Generate(ctx context.Context, req blog.Request) (*blog.Post, error)
}

// StreamClient is the low-latency SSE path to the backend.
type StreamClient interface {
	Stream(ctx context.Context, req blog.Request, onPartial stream.OnPartial) (*blog.Post, error)
}

// Config contains the required parameters for a Generator.
type Config struct {
	Store  *session.Store
	Keeper *session.Keeper
	Logger log.Logger

	// Transport and Stream are nil when no backend endpoint is
	// configured; Synthetic is required in that case.
	Transport TransportClient
	Stream    StreamClient
	Synthetic *synthetic.Responder

	// StagedSynthetic emits staged partial updates in synthetic mode to
	// imitate streaming (development convenience).
	StagedSynthetic bool

	// Options are the defaults merged under caller overrides.
	Options blog.GenerationOptions

	// OnStatus and OnPartial notify the surrounding UI. Either may be
	// nil. OnPartial receives stream updates in arrival order.
	OnStatus  func(blog.Status)
	OnPartial func(blog.PartialUpdate)
}

// validate checks that the configuration is usable.
func (cfg Config) validate() error {
	if cfg.Store == nil {
		return errors.New("session store is required")
	}
	if cfg.Keeper == nil {
		return errors.New("session keeper is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Transport == nil && cfg.Synthetic == nil {
		return errors.New("synthetic responder is required when no transport is configured")
	}
	return nil
}

// Generator orchestrates one generation at a time.
type Generator struct {
	store     *session.Store
	keeper    *session.Keeper
	logger    log.Logger
	transport TransportClient
	stream    StreamClient
	synthetic *synthetic.Responder
	staged    bool
	options   blog.GenerationOptions
	onStatus  func(blog.Status)
	onPartial func(blog.PartialUpdate)

	mu     sync.Mutex
	cancel context.CancelFunc // non-nil while a generation is in flight
}

// New creates a Generator from the given configuration.
func New(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	options := cfg.Options
	if options.Tone == "" {
		options = blog.DefaultOptions()
	}
	return &Generator{
		store:     cfg.Store,
		keeper:    cfg.Keeper,
		logger:    cfg.Logger,
		transport: cfg.Transport,
		stream:    cfg.Stream,
		synthetic: cfg.Synthetic,
		staged:    cfg.StagedSynthetic,
		options:   options,
		onStatus:  cfg.OnStatus,
		onPartial: cfg.OnPartial,
	}, nil
}

// Generate produces a post for the topic within the given chat thread.
// At most one generation runs per Generator; concurrent calls fail with
// ErrBusy. opts may be nil or a partial override of the defaults.
func (g *Generator) Generate(ctx context.Context, chatID, topic string, opts *blog.GenerationOptions) (*blog.Post, error) {
	return g.generate(ctx, chatID, topic, opts, g.onPartial)
}

// GenerateStreamed is Generate with a per-call partial callback,
// replacing the configured one for this request. Used by the HTTP
// facade to relay partials onto the caller's SSE connection.
func (g *Generator) GenerateStreamed(ctx context.Context, chatID, topic string, opts *blog.GenerationOptions, onPartial func(blog.PartialUpdate)) (*blog.Post, error) {
	return g.generate(ctx, chatID, topic, opts, onPartial)
}

func (g *Generator) generate(ctx context.Context, chatID, topic string, opts *blog.GenerationOptions, onPartial func(blog.PartialUpdate)) (*blog.Post, error) {
	runCtx, err := g.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer g.end()

	sessionID := g.keeper.SessionIDFor(chatID)
	options := g.options.Merge(opts)
	req := blog.Request{ChatInput: topic, SessionID: sessionID, Options: &options}

	placeholderID := g.openConversation(chatID, topic)
	g.setStatus(blog.StatusGenerating)

	post, err := g.run(runCtx, req, topic, options, onPartial)
	if err != nil {
		g.closeConversation(chatID, placeholderID, failureMessage(err))
		if isCancelled(err) {
			// User-initiated: informational, not an error state.
			g.setStatus(blog.StatusIdle)
			return nil, fmt.Errorf("%w", webhook.ErrCancelled)
		}
		g.setStatus(blog.StatusError)
		return nil, err
	}

	g.closeConversation(chatID, placeholderID, fmt.Sprintf("Successfully generated: %q", post.Title))
	if err := g.store.AddPost(post); err != nil {
		g.logger.Warn("failed to record post in history", "error", err)
	}
	g.setStatus(blog.StatusComplete)
	return post, nil
}

// Cancel aborts the in-flight generation, if any. The aborted call
// resolves as cancelled and the placeholder is marked accordingly.
func (g *Generator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// Busy reports whether a generation is currently in flight.
func (g *Generator) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancel != nil
}

// run executes the generation over whichever path applies: synthetic
// when no backend is configured, otherwise stream-first with a single
// transport fallback.
func (g *Generator) run(ctx context.Context, req blog.Request, topic string, options blog.GenerationOptions, onPartial func(blog.PartialUpdate)) (*blog.Post, error) {
	if g.transport == nil {
		g.logger.Info("no backend endpoint configured, using synthetic responder", "topic", topic)
		if g.staged {
			return g.synthetic.RespondStaged(ctx, topic, options, onPartial)
		}
		return g.synthetic.Respond(ctx, topic, options)
	}

	if g.stream != nil {
		post, err := g.stream.Stream(ctx, req, onPartial)
		if err == nil {
			return post, nil
		}
		if isCancelled(err) {
			return nil, err
		}
		// Any stream failure falls back to exactly one transport
		// attempt; its outcome is the outcome of the generation.
		g.logger.Warn("stream path failed, falling back to transport", "error", err)
	}

	return g.transport.Generate(ctx, req)
}

// begin acquires the single-flight slot and returns the cancellable
// run context.
func (g *Generator) begin(ctx context.Context) (context.Context, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		return nil, ErrBusy
	}
	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	return runCtx, nil
}

func (g *Generator) end() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// openConversation appends the user entry and the loading assistant
// placeholder, returning the placeholder id. These are state
// transitions for the surrounding UI, not network calls; failures are
// logged and generation proceeds.
func (g *Generator) openConversation(chatID, topic string) string {
	if chatID == "" {
		return ""
	}
	if err := g.store.AppendMessage(chatID, blog.NewMessage(blog.RoleUser, topic)); err != nil {
		g.logger.Warn("failed to record user message", "chat_id", chatID, "error", err)
		return ""
	}
	placeholder := blog.NewMessage(blog.RoleAssistant, loadingMessage)
	placeholder.Loading = true
	if err := g.store.AppendMessage(chatID, placeholder); err != nil {
		g.logger.Warn("failed to record placeholder message", "chat_id", chatID, "error", err)
		return ""
	}
	return placeholder.ID
}

// closeConversation resolves the placeholder with a final message. The
// placeholder is never left in a loading state.
func (g *Generator) closeConversation(chatID, placeholderID, content string) {
	if chatID == "" || placeholderID == "" {
		return
	}
	if err := g.store.UpdateMessage(chatID, placeholderID, content, false); err != nil {
		g.logger.Warn("failed to resolve placeholder message", "chat_id", chatID, "error", err)
	}
}

func (g *Generator) setStatus(status blog.Status) {
	if g.onStatus != nil {
		g.onStatus(status)
	}
}

// failureMessage renders a terminal error as the human-readable
// placeholder content.
func failureMessage(err error) string {
	if isCancelled(err) {
		return "Generation cancelled"
	}
	return "Error: " + err.Error()
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, webhook.ErrCancelled)
}
