package blog

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown is the shared converter for post bodies. GFM covers the
// tables and strikethrough the backend occasionally emits.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToMarkdown renders the post as a standalone markdown document:
// title, meta blockquote, keyword/metadata lines, then the three content
// sections and any image references.
func (p *Post) ToMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.MetaDescription != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.MetaDescription)
	}
	fmt.Fprintf(&b, "**Keywords:** %s\n", strings.Join(p.Keywords, ", "))
	fmt.Fprintf(&b, "**Reading Time:** %d minutes\n", p.ReadingTime)
	fmt.Fprintf(&b, "**Word Count:** %d words\n\n", p.WordCount)
	b.WriteString("---\n\n")

	b.WriteString("## Introduction\n\n")
	b.WriteString(p.Introduction)
	b.WriteString("\n\n## Main Content\n\n")
	b.WriteString(p.MainContent)
	b.WriteString("\n\n## Conclusion\n\n")
	b.WriteString(p.Conclusion)
	b.WriteString("\n")

	if len(p.ImageURLs) > 0 {
		b.WriteString("\n## Images\n\n")
		for i, url := range p.ImageURLs {
			fmt.Fprintf(&b, "![Image %d](%s)\n", i+1, url)
		}
	}

	fmt.Fprintf(&b, "\n---\n\n*Generated on %s*\n", p.CreatedAt.Format("2006-01-02"))
	return b.String()
}

// ToHTML renders the post as a self-contained HTML document. Section
// bodies go through the markdown converter; header metadata is escaped
// verbatim.
func (p *Post) ToHTML() (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="description" content="%s">
<meta name="keywords" content="%s">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 2rem; }
h1 { border-bottom: 3px solid #ff6b35; padding-bottom: 0.5rem; }
.meta { background: #f5f5f5; padding: 1rem; border-radius: 8px; margin: 1rem 0; }
img { max-width: 100%%; height: auto; }
blockquote { border-left: 4px solid #ff6b35; padding-left: 1rem; color: #666; font-style: italic; }
</style>
</head>
<body>
<article>
<h1>%s</h1>
<div class="meta">
<blockquote>%s</blockquote>
<p><strong>Keywords:</strong> %s</p>
<p><strong>Reading Time:</strong> %d minutes | <strong>Word Count:</strong> %d words</p>
</div>
`,
		html.EscapeString(p.MetaDescription),
		html.EscapeString(strings.Join(p.Keywords, ", ")),
		html.EscapeString(p.Title),
		html.EscapeString(p.Title),
		html.EscapeString(p.MetaDescription),
		html.EscapeString(strings.Join(p.Keywords, ", ")),
		p.ReadingTime, p.WordCount)

	sections := []struct {
		heading string
		body    string
	}{
		{"Introduction", p.Introduction},
		{"Main Content", p.MainContent},
		{"Conclusion", p.Conclusion},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "<section>\n<h2>%s</h2>\n", s.heading)
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(s.body), &buf); err != nil {
			return "", fmt.Errorf("rendering %s: %w", strings.ToLower(s.heading), err)
		}
		b.Write(buf.Bytes())
		b.WriteString("</section>\n")
	}

	if len(p.ImageURLs) > 0 {
		b.WriteString("<section>\n<h2>Images</h2>\n")
		for i, url := range p.ImageURLs {
			fmt.Fprintf(&b, "<img src=\"%s\" alt=\"Image %d\" />\n", html.EscapeString(url), i+1)
		}
		b.WriteString("</section>\n")
	}

	fmt.Fprintf(&b, "<footer>\n<hr />\n<p><em>Generated on %s</em></p>\n</footer>\n</article>\n</body>\n</html>\n",
		p.CreatedAt.Format("2006-01-02"))
	return b.String(), nil
}
