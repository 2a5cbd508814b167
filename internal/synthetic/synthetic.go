// Package synthetic provides the local stand-in backend used when no
// webhook endpoint is configured. It returns a canned post after a
// simulated delay, optionally staged as partial updates to imitate the
// streaming path, so callers see the same contract in both modes.
package synthetic

import (
	"context"
	"strings"
	"time"

	"github.com/draftforge/draftforge/internal/blog"
)

// Responder serves canned posts with a simulated network delay.
type Responder struct {
	delay time.Duration
}

// New creates a responder with the given simulated delay.
func New(delay time.Duration) *Responder {
	return &Responder{delay: delay}
}

// Respond returns the canned post for the topic after the simulated
// delay. Cancellation via ctx is honored during the delay.
func (r *Responder) Respond(ctx context.Context, topic string, opts blog.GenerationOptions) (*blog.Post, error) {
	if err := r.sleep(ctx, r.delay); err != nil {
		return nil, err
	}
	return r.build(topic, opts), nil
}

// RespondStaged emits the post field by field through onPartial before
// returning the complete post, imitating the streaming path. Updates
// arrive at even intervals across the configured delay.
func (r *Responder) RespondStaged(ctx context.Context, topic string, opts blog.GenerationOptions, onPartial func(blog.PartialUpdate)) (*blog.Post, error) {
	post := r.build(topic, opts)

	stages := []blog.PartialUpdate{
		{Title: &post.Title},
		{MetaDescription: &post.MetaDescription},
		{Introduction: &post.Introduction},
		{MainContent: &post.MainContent},
		{Conclusion: &post.Conclusion},
	}
	interval := r.delay / time.Duration(len(stages))
	for _, stage := range stages {
		if err := r.sleep(ctx, interval); err != nil {
			return nil, err
		}
		if onPartial != nil {
			onPartial(stage)
		}
	}
	return post, nil
}

// build assembles the template post with per-topic overrides applied.
func (r *Responder) build(topic string, opts blog.GenerationOptions) *blog.Post {
	post := blog.NewPost()
	post.Title = templateTitle
	post.MetaDescription = templateMeta
	post.Introduction = templateIntroduction
	post.MainContent = templateMainContent
	post.Conclusion = templateConclusion
	post.ImageURLs = append([]string{}, templateImageURLs...)
	post.Keywords = append([]string{}, templateKeywords...)

	if override, ok := topicResponses[slugify(topic)]; ok {
		post.Title = override.title
		post.MetaDescription = override.meta
	}
	if len(opts.Keywords) > 0 {
		post.Keywords = opts.Keywords
	}

	post.FinalizeCounts()
	return post
}

func (r *Responder) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// slugify normalizes a topic to its lookup key: lowercased with word
// separators collapsed to hyphens.
func slugify(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(topic))), "-")
}
