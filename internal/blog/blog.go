// Package blog defines the data model shared by the generation pipeline:
// the Post produced for one generation request, the conversational Message
// entries surrounding it, the caller-supplied GenerationOptions, and the
// wire types exchanged with the webhook backend.
package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tone values accepted in GenerationOptions.Tone.
const (
	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneTechnical    = "technical"
	ToneEducational  = "educational"
)

// wordsPerMinute is the reading speed used to derive ReadingTime.
const wordsPerMinute = 200

// Post is the structured long-form result of one generation request.
//
// WordCount and ReadingTime are derived from the text fields when the
// backend omits them; Keywords is never nil.
type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription"`
	Introduction    string    `json:"introduction"`
	MainContent     string    `json:"mainContent"`
	Conclusion      string    `json:"conclusion"`
	ImageURLs       []string  `json:"imageUrls"`
	Keywords        []string  `json:"keywords"`
	CreatedAt       time.Time `json:"createdAt"`
	WordCount       int       `json:"wordCount"`
	ReadingTime     int       `json:"readingTime"`
}

// NewPost returns an empty post shell with a fresh id and timestamp.
// Fields are filled in as partial updates or the final parse arrive.
func NewPost() *Post {
	return &Post{
		ID:        "blog_" + uuid.NewString(),
		ImageURLs: []string{},
		Keywords:  []string{},
		CreatedAt: time.Now(),
	}
}

// FullText returns introduction, main content and conclusion joined by
// single spaces. This is the text WordCount and ReadingTime are derived
// from.
func (p *Post) FullText() string {
	return p.Introduction + " " + p.MainContent + " " + p.Conclusion
}

// FinalizeCounts fills WordCount and ReadingTime when the backend left
// them at zero. The derivation is deterministic over FullText.
func (p *Post) FinalizeCounts() {
	if p.WordCount == 0 {
		p.WordCount = CountWords(p.FullText())
	}
	if p.ReadingTime == 0 {
		p.ReadingTime = ReadingTimeFor(p.WordCount)
	}
}

// CountWords counts whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ReadingTimeFor returns the reading time in minutes for the given word
// count: ceil(words/200), minimum 1.
func ReadingTimeFor(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Slug returns a filesystem-friendly name derived from the post title,
// used for export filenames.
func (p *Post) Slug() string {
	slug := strings.ToLower(strings.TrimSpace(p.Title))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = p.ID
	}
	return slug
}

// GenerationOptions controls tone, length and keyword seeding of a
// generation request. All fields have defaults; callers may override a
// subset via Merge. GenerateImages is a pointer so a partial override
// can leave it unset (nil) without flipping the default.
type GenerationOptions struct {
	Tone           string   `json:"tone"`
	WordCount      int      `json:"wordCount"`
	Keywords       []string `json:"keywords"`
	GenerateImages *bool    `json:"generateImages,omitempty"`
}

// Bool returns a pointer to v, for GenerateImages overrides.
func Bool(v bool) *bool { return &v }

// DefaultOptions returns the option defaults: professional tone, 1200
// words, no seed keywords, image generation enabled.
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		Tone:           ToneProfessional,
		WordCount:      1200,
		Keywords:       []string{},
		GenerateImages: Bool(true),
	}
}

// Merge overlays the set fields of override onto the defaults and
// returns the result. A nil override yields the defaults unchanged.
func (o GenerationOptions) Merge(override *GenerationOptions) GenerationOptions {
	if override == nil {
		return o
	}
	if override.Tone != "" {
		o.Tone = override.Tone
	}
	if override.WordCount > 0 {
		o.WordCount = override.WordCount
	}
	if override.Keywords != nil {
		o.Keywords = override.Keywords
	}
	if override.GenerateImages != nil {
		o.GenerateImages = override.GenerateImages
	}
	return o
}

// ValidTone reports whether tone is one of the accepted values.
func ValidTone(tone string) bool {
	switch tone {
	case ToneProfessional, ToneCasual, ToneTechnical, ToneEducational:
		return true
	}
	return false
}

// Request is the wire entity POSTed to the generation webhook.
type Request struct {
	ChatInput string             `json:"chatInput"`
	SessionID string             `json:"sessionId"`
	Options   *GenerationOptions `json:"options,omitempty"`
}

// PartialUpdate is a subset of Post fields delivered incrementally during
// streaming. Later values for the same field overwrite earlier ones.
type PartialUpdate struct {
	Title           *string  `json:"title,omitempty"`
	MetaDescription *string  `json:"metaDescription,omitempty"`
	Introduction    *string  `json:"introduction,omitempty"`
	MainContent     *string  `json:"mainContent,omitempty"`
	Conclusion      *string  `json:"conclusion,omitempty"`
	ImageURLs       []string `json:"imageUrls,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// Apply merges the update into p. Absent fields leave p untouched.
func (u PartialUpdate) Apply(p *Post) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.MetaDescription != nil {
		p.MetaDescription = *u.MetaDescription
	}
	if u.Introduction != nil {
		p.Introduction = *u.Introduction
	}
	if u.MainContent != nil {
		p.MainContent = *u.MainContent
	}
	if u.Conclusion != nil {
		p.Conclusion = *u.Conclusion
	}
	if u.ImageURLs != nil {
		p.ImageURLs = u.ImageURLs
	}
	if u.Keywords != nil {
		p.Keywords = u.Keywords
	}
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversational entry in a chat thread.
// Loading marks an assistant placeholder whose generation is in flight.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Loading   bool      `json:"loading,omitempty"`
}

// NewMessage returns a message with a fresh id and timestamp.
func NewMessage(role, content string) *Message {
	return &Message{
		ID:        fmt.Sprintf("msg_%s", uuid.NewString()),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Status describes the lifecycle of one generation request.
type Status string

// Generation statuses.
const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)
