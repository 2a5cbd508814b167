package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/blog"
)

func samplePost() *blog.Post {
	post := blog.NewPost()
	post.Title = "Safety Protocols in High-Rise Demolition"
	post.MetaDescription = "Critical safety protocols for demolition work."
	post.Introduction = "Intro paragraph."
	post.MainContent = "## Section\n\nBody text."
	post.Conclusion = "Closing paragraph."
	post.Keywords = []string{"safety", "demolition"}
	post.FinalizeCounts()
	return post
}

func TestMarkdownWritesSlugNamedFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Markdown(samplePost(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "safety-protocols-in-high-rise-demolition.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Safety Protocols in High-Rise Demolition")
	assert.Contains(t, content, "Intro paragraph.")
	assert.Contains(t, content, "safety, demolition")
}

func TestHTMLWritesRenderedDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := HTML(samplePost(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "Safety Protocols in High-Rise Demolition")
	assert.Contains(t, content, "<h2")
}

func TestWriteDispatchesOnFormat(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(samplePost(), dir, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(path))

	path, err = Write(samplePost(), dir, FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, ".html", filepath.Ext(path))

	_, err = Write(samplePost(), dir, Format("pdf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"html":     FormatHTML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMarkdownCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := Markdown(samplePost(), dir)
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
