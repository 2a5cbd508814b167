package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/export"
	"github.com/draftforge/draftforge/internal/webhook"
)

// generateFlags holds the parsed generate command line. imagesSet
// records whether -images was passed explicitly; an untouched flag must
// not override the configured default.
type generateFlags struct {
	topic     string
	chatID    string
	tone      string
	words     int
	keywords  string
	images    bool
	imagesSet bool
	out       string
	format    string
}

// parseGenerateFlags parses the generate command arguments. The topic is
// everything left after the flags, joined by spaces.
func parseGenerateFlags(args []string) (*generateFlags, error) {
	gf := &generateFlags{}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&gf.chatID, "chat", "", "chat thread id to attach the generation to")
	fs.StringVar(&gf.tone, "tone", "", "tone override (professional, casual, technical, educational)")
	fs.IntVar(&gf.words, "words", 0, "target word count override")
	fs.StringVar(&gf.keywords, "keywords", "", "seed keywords, comma separated")
	fs.BoolVar(&gf.images, "images", true, "request image generation")
	fs.StringVar(&gf.out, "out", ".", "export directory")
	fs.StringVar(&gf.format, "format", "markdown", "export format (markdown, html)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing generate flags: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "images" {
			gf.imagesSet = true
		}
	})

	gf.topic = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if gf.topic == "" {
		return nil, errors.New("a topic is required: draftforge generate <topic>")
	}
	if gf.tone != "" && !blog.ValidTone(gf.tone) {
		return nil, fmt.Errorf("unknown tone: %s", gf.tone)
	}
	return gf, nil
}

// options converts the parsed flags into a generation override. Unset
// flags leave the configured defaults in place.
func (gf *generateFlags) options() *blog.GenerationOptions {
	opts := &blog.GenerationOptions{
		Tone:      gf.tone,
		WordCount: gf.words,
	}
	if gf.imagesSet {
		opts.GenerateImages = blog.Bool(gf.images)
	}
	if gf.keywords != "" {
		for _, k := range strings.Split(gf.keywords, ",") {
			if k = strings.TrimSpace(k); k != "" {
				opts.Keywords = append(opts.Keywords, k)
			}
		}
	}
	return opts
}

// runGenerate generates one post and exports it to disk. Ctrl+C cancels
// the in-flight generation.
func runGenerate() error {
	gf, err := parseGenerateFlags(os.Args[2:])
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(gf.format)
	if err != nil {
		return err
	}

	a, err := setup(nil, func(u blog.PartialUpdate) {
		for _, field := range partialFields(u) {
			fmt.Fprintf(os.Stderr, "  received %s\n", field)
		}
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Generating blog post for %q...\n", gf.topic)
	post, err := a.gen.Generate(ctx, gf.chatID, gf.topic, gf.options())
	if err != nil {
		if errors.Is(err, webhook.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Generation cancelled")
			return nil
		}
		return err
	}

	path, err := export.Write(post, gf.out, format)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %q (%d words, %d min read)\n", post.Title, post.WordCount, post.ReadingTime)
	fmt.Printf("Written to %s\n", path)
	return nil
}

// partialFields names the fields carried by a partial update, for
// progress output.
func partialFields(u blog.PartialUpdate) []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.MetaDescription != nil {
		fields = append(fields, "meta description")
	}
	if u.Introduction != nil {
		fields = append(fields, "introduction")
	}
	if u.MainContent != nil {
		fields = append(fields, "main content")
	}
	if u.Conclusion != nil {
		fields = append(fields, "conclusion")
	}
	if u.Keywords != nil {
		fields = append(fields, "keywords")
	}
	if u.ImageURLs != nil {
		fields = append(fields, "images")
	}
	return fields
}
