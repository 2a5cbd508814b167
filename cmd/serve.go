package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/draftforge/draftforge/api"
)

// runServe initializes and starts the HTTP API server.
func runServe() error {
	addr, err := parseServeAddr()
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	a, err := setup(nil, nil)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = a.cfg.ServeAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("HTTP server ready",
		"addr", addr,
		"api", "/api/*",
		"health", "/health, /ready",
		"synthetic_mode", a.cfg.SyntheticMode(),
	)

	return api.NewServer(a.store, a.gen, a.probe, a.logger).Run(ctx, addr)
}
