// Package cmd provides CLI commands for DraftForge.
//
// Commands:
//   - generate: Generate one blog post from a topic
//   - chat: Interactive line-based mode over one chat thread
//   - serve: HTTP API server with SSE streaming
//   - test: Probe connectivity to the configured webhook backend
//   - history: List recently generated posts
//
// Signal handling and graceful shutdown are implemented
// for all commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// Execute is the main entry point for the DraftForge CLI application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "generate":
		return runGenerate()
	case "chat":
		return runChat()
	case "serve":
		return runServe()
	case "test":
		return runTest()
	case "history":
		return runHistory()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("DraftForge - Structured blog post generation from your terminal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  draftforge generate <topic>  Generate a blog post for the topic")
	fmt.Println("  draftforge chat              Interactive mode (one chat thread per session)")
	fmt.Println("  draftforge serve [addr]      Start HTTP API server (default: 127.0.0.1:3400)")
	fmt.Println("  draftforge test              Probe the configured webhook backend")
	fmt.Println("  draftforge history           List recently generated posts")
	fmt.Println("  draftforge --version         Show version information")
	fmt.Println("  draftforge --help            Show this help")
	fmt.Println()
	fmt.Println("Generate flags:")
	fmt.Println("  -chat <id>         Attach the generation to an existing chat thread")
	fmt.Println("  -tone <tone>       professional | casual | technical | educational")
	fmt.Println("  -words <n>         Target word count")
	fmt.Println("  -keywords <a,b>    Seed keywords, comma separated")
	fmt.Println("  -images=false      Disable image generation")
	fmt.Println("  -out <dir>         Export directory (default: current directory)")
	fmt.Println("  -format <fmt>      markdown | html (default: markdown)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DRAFTFORGE_WEBHOOK_URL  Backend webhook URL (unset = synthetic mode)")
	fmt.Println("  DRAFTFORGE_STATE_DIR    State directory override")
	fmt.Println("  DEBUG                   Optional: Enable debug logging")
}
