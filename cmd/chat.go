package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/webhook"
)

// runChat starts a line-based interactive session: every line becomes a
// generation request in the same chat thread, so the backend keeps the
// conversational context across turns.
func runChat() error {
	a, err := setup(nil, func(u blog.PartialUpdate) {
		for _, field := range partialFields(u) {
			fmt.Fprintf(os.Stderr, "  received %s\n", field)
		}
	})
	if err != nil {
		return err
	}

	thread, err := a.store.CreateChat("Interactive session")
	if err != nil {
		return fmt.Errorf("creating chat thread: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("DraftForge interactive mode. Type a topic to generate, /help for commands.")
	if a.cfg.SyntheticMode() {
		fmt.Println("No webhook URL configured: responses are synthetic.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/help":
			fmt.Println("  <topic>      Generate a blog post for the topic")
			fmt.Println("  /new         Start a fresh chat thread (new backend session)")
			fmt.Println("  /history     List recently generated posts")
			fmt.Println("  /exit, /quit Leave interactive mode")
			continue
		case "/new":
			thread, err = a.store.CreateChat("Interactive session")
			if err != nil {
				return fmt.Errorf("creating chat thread: %w", err)
			}
			fmt.Println("Started a new chat thread.")
			continue
		case "/history":
			if err := runHistoryOn(a); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		post, err := a.gen.Generate(ctx, thread.ID, line, nil)
		if err != nil {
			if errors.Is(err, webhook.ErrCancelled) {
				fmt.Println("Generation cancelled")
				if ctx.Err() != nil {
					return nil
				}
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("Generated %q (%d words, %d min read)\n", post.Title, post.WordCount, post.ReadingTime)
		fmt.Println("Use `draftforge history` to list it, or export with `draftforge generate`.")
	}
}
