// Package extract parses the raw text returned by the generation backend
// into a structured post.
//
// The backend emits one block of text with bolded field markers (Title,
// Meta Description, Introduction, Main Content, Conclusion, Keywords),
// but the format is not contractually guaranteed: markers may be absent
// or garbled. Extraction therefore never fails; every field degrades
// independently to its zero value, and main content falls back to the
// entire raw text so nothing is silently dropped.
package extract

import (
	"regexp"
	"strings"

	"github.com/draftforge/draftforge/internal/blog"
)

// Single-line markers: content runs to the end of the line.
var (
	titleRe    = regexp.MustCompile(`\*\*Title:\*\*[ \t]*([^\n]+)`)
	metaRe     = regexp.MustCompile(`\*\*Meta Description:\*\*[ \t]*([^\n]+)`)
	keywordsRe = regexp.MustCompile(`\*\*Keywords:\*\*[ \t]*([^\n]+)`)
)

// Block markers: content runs lazily until the next bolded marker or the
// end of the text.
var (
	introRe      = regexp.MustCompile(`(?s)\*\*Introduction:\*\*\s*(.+?)\s*(?:\*\*|\z)`)
	mainRe       = regexp.MustCompile(`(?s)\*\*Main Content:\*\*\s*(.+?)\s*(?:\*\*|\z)`)
	conclusionRe = regexp.MustCompile(`(?s)\*\*Conclusion:\*\*\s*(.+?)\s*(?:\*\*|\z)`)
)

// Extract parses raw backend output into a post. It always returns a
// post: fields whose marker is not found are empty, except MainContent
// which falls back to the whole raw text. Word count and reading time
// are left at zero for the caller to finalize.
func Extract(raw string) *blog.Post {
	post := blog.NewPost()

	post.Title = firstMatch(titleRe, raw)
	post.MetaDescription = firstMatch(metaRe, raw)
	post.Introduction = firstMatch(introRe, raw)
	post.Conclusion = firstMatch(conclusionRe, raw)

	post.MainContent = firstMatch(mainRe, raw)
	if post.MainContent == "" {
		post.MainContent = raw
	}

	post.Keywords = splitKeywords(firstMatch(keywordsRe, raw))

	return post
}

func firstMatch(re *regexp.Regexp, raw string) string {
	m := re.FindStringSubmatch(raw)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// splitKeywords splits a comma-separated keyword line into trimmed,
// non-empty entries. The result is never nil.
func splitKeywords(line string) []string {
	keywords := []string{}
	for _, k := range strings.Split(line, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
