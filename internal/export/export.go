// Package export writes completed posts to disk as standalone Markdown
// or HTML documents named after the post's title slug.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/draftforge/draftforge/internal/blog"
)

// Format identifies an export output format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Write renders the post in the given format into dir and returns the
// path of the written file. The directory is created if absent.
func Write(post *blog.Post, dir string, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(post, dir)
	case FormatHTML:
		return HTML(post, dir)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Markdown writes the post as <slug>.md into dir.
func Markdown(post *blog.Post, dir string) (string, error) {
	return write(dir, post.Slug()+".md", []byte(post.ToMarkdown()))
}

// HTML writes the post as a self-contained <slug>.html into dir.
func HTML(post *blog.Post, dir string) (string, error) {
	doc, err := post.ToHTML()
	if err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return write(dir, post.Slug()+".html", []byte(doc))
}

func write(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}
