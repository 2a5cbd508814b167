package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/generator"
	"github.com/draftforge/draftforge/internal/log"
	"github.com/draftforge/draftforge/internal/session"
	"github.com/draftforge/draftforge/internal/stream"
	"github.com/draftforge/draftforge/internal/synthetic"
	"github.com/draftforge/draftforge/internal/webhook"
)

// app bundles the wired pipeline components a command needs.
type app struct {
	cfg    *config.Config
	store  *session.Store
	keeper *session.Keeper
	gen    *generator.Generator
	logger log.Logger

	// probe is nil in synthetic mode.
	probe *webhook.Client
}

// setup loads the configuration and wires the full pipeline. Commands
// that relay progress pass callbacks; nil is fine for the rest.
func setup(onStatus func(blog.Status), onPartial func(blog.PartialUpdate)) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.Default()

	store, err := session.NewStore(cfg.StateDir, cfg.HistoryLimit, logger)
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	keeper := session.NewKeeper(cfg.SessionPrefix, store)

	genCfg := generator.Config{
		Store:     store,
		Keeper:    keeper,
		Logger:    logger,
		Options:   cfg.DefaultOptions(),
		OnStatus:  onStatus,
		OnPartial: onPartial,
	}

	a := &app{cfg: cfg, store: store, keeper: keeper, logger: logger}

	if cfg.SyntheticMode() {
		genCfg.Synthetic = synthetic.New(cfg.SyntheticDelay)
		genCfg.StagedSynthetic = true
	} else {
		transport, err := webhook.New(webhook.Config{
			Endpoint: cfg.WebhookURL,
			Timeout:  cfg.GenerateTimeout,
			Logger:   logger,
			Limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
		})
		if err != nil {
			return nil, fmt.Errorf("creating webhook client: %w", err)
		}
		streamClient, err := stream.New(stream.Config{
			Endpoint: cfg.WebhookURL,
			Timeout:  cfg.StreamTimeout,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating stream client: %w", err)
		}
		genCfg.Transport = transport
		genCfg.Stream = streamClient

		a.probe, err = webhook.New(webhook.Config{
			Endpoint: cfg.WebhookURL,
			Timeout:  cfg.ProbeTimeout,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating probe client: %w", err)
		}
	}

	a.gen, err = generator.New(genCfg)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return a, nil
}
