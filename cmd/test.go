package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

// runTest probes the configured webhook backend and reports the result.
func runTest() error {
	a, err := setup(nil, nil)
	if err != nil {
		return err
	}
	if a.probe == nil {
		fmt.Println("No webhook URL configured: running in synthetic mode.")
		fmt.Println("Set DRAFTFORGE_WEBHOOK_URL to connect a backend.")
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Probing %s...\n", a.cfg.WebhookURL)
	result, err := a.probe.Probe(ctx)
	if err != nil {
		if result != nil {
			fmt.Printf("Backend replied with status %d in %s\n", result.Status, result.Latency)
		}
		return fmt.Errorf("probe failed: %w", err)
	}

	fmt.Printf("Backend reachable: status %d in %s\n", result.Status, result.Latency)
	if result.Body != "" {
		fmt.Printf("Response: %s\n", result.Body)
	}
	return nil
}
