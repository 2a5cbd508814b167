package cmd

import (
	"fmt"
	"os"
)

// Version information (injected at build time via ldflags)
var (
	Version   = "development"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// runVersion displays version and environment information.
func runVersion() {
	fmt.Printf("DraftForge %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	if url := os.Getenv("DRAFTFORGE_WEBHOOK_URL"); url != "" {
		fmt.Printf("Webhook URL: %s\n", url)
	} else {
		fmt.Println("Webhook URL: not set (synthetic mode)")
	}
}
