// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.draftforge/config.yaml)
//  3. Default values
//
// An empty WebhookURL is a valid configuration: the generator runs in
// synthetic mode and serves canned posts locally.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/draftforge/draftforge/internal/blog"
)

var (
	// ErrInvalidWebhookURL indicates the webhook URL could not be parsed.
	ErrInvalidWebhookURL = errors.New("invalid webhook URL")

	// ErrInvalidTimeout indicates a timeout value is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidTone indicates the default tone is not a known value.
	ErrInvalidTone = errors.New("invalid tone")

	// ErrInvalidWordCount indicates the default word count is not positive.
	ErrInvalidWordCount = errors.New("invalid word count")

	// ErrInvalidHistoryLimit indicates the history limit is not positive.
	ErrInvalidHistoryLimit = errors.New("invalid history limit")
)

// Defaults for the generation pipeline. The three timeouts mirror the
// operational profile of the backend: long for real generation calls,
// shorter for transport-only calls, short for health probes.
const (
	DefaultSessionPrefix   = "blog_session_"
	DefaultGenerateTimeout = 120 * time.Second
	DefaultStreamTimeout   = 30 * time.Second
	DefaultProbeTimeout    = 5 * time.Second
	DefaultSyntheticDelay  = 1500 * time.Millisecond
	DefaultHistoryLimit    = 10
	DefaultServeAddr       = "127.0.0.1:3400"
)

// Config stores application configuration.
type Config struct {
	// Backend endpoint. Empty means no backend is configured and the
	// generator degrades to synthetic mode.
	WebhookURL string `mapstructure:"webhook_url" json:"webhook_url"`

	// Prefix prepended to chat ids when deriving stable session ids.
	SessionPrefix string `mapstructure:"session_prefix" json:"session_prefix"`

	// Timeouts per call class.
	GenerateTimeout time.Duration `mapstructure:"generate_timeout" json:"generate_timeout"`
	StreamTimeout   time.Duration `mapstructure:"stream_timeout" json:"stream_timeout"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout" json:"probe_timeout"`

	// Simulated latency of the synthetic responder.
	SyntheticDelay time.Duration `mapstructure:"synthetic_delay" json:"synthetic_delay"`

	// Number of completed posts kept in the recent-history store.
	HistoryLimit int `mapstructure:"history_limit" json:"history_limit"`

	// Directory holding persisted chats, messages and recent posts.
	StateDir string `mapstructure:"state_dir" json:"state_dir"`

	// Address of the local HTTP facade (serve mode).
	ServeAddr string `mapstructure:"serve_addr" json:"serve_addr"`

	// Generation defaults applied when the caller supplies no override.
	Tone           string `mapstructure:"tone" json:"tone"`
	WordCount      int    `mapstructure:"word_count" json:"word_count"`
	GenerateImages bool   `mapstructure:"generate_images" json:"generate_images"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".draftforge")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, configDir)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("webhook_url", "")
	v.SetDefault("session_prefix", DefaultSessionPrefix)
	v.SetDefault("generate_timeout", DefaultGenerateTimeout)
	v.SetDefault("stream_timeout", DefaultStreamTimeout)
	v.SetDefault("probe_timeout", DefaultProbeTimeout)
	v.SetDefault("synthetic_delay", DefaultSyntheticDelay)
	v.SetDefault("history_limit", DefaultHistoryLimit)
	v.SetDefault("state_dir", filepath.Join(configDir, "state"))
	v.SetDefault("serve_addr", DefaultServeAddr)
	v.SetDefault("tone", blog.ToneProfessional)
	v.SetDefault("word_count", 1200)
	v.SetDefault("generate_images", true)
}

// bindEnvVariables binds environment overrides explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("webhook_url", "DRAFTFORGE_WEBHOOK_URL")
	mustBind("session_prefix", "DRAFTFORGE_SESSION_PREFIX")
	mustBind("state_dir", "DRAFTFORGE_STATE_DIR")
	mustBind("serve_addr", "DRAFTFORGE_SERVE_ADDR")
}

// Validate checks the configuration and fails fast on the first problem.
func (c *Config) Validate() error {
	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidWebhookURL, c.WebhookURL)
		}
	}
	for name, d := range map[string]time.Duration{
		"generate_timeout": c.GenerateTimeout,
		"stream_timeout":   c.StreamTimeout,
		"probe_timeout":    c.ProbeTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidTimeout, name)
		}
	}
	if c.SyntheticDelay < 0 {
		return fmt.Errorf("%w: synthetic_delay must not be negative", ErrInvalidTimeout)
	}
	if !blog.ValidTone(c.Tone) {
		return fmt.Errorf("%w: %q", ErrInvalidTone, c.Tone)
	}
	if c.WordCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWordCount, c.WordCount)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHistoryLimit, c.HistoryLimit)
	}
	return nil
}

// SyntheticMode reports whether no backend endpoint is configured.
func (c *Config) SyntheticMode() bool {
	return c.WebhookURL == ""
}

// DefaultOptions returns the generation options implied by the config.
func (c *Config) DefaultOptions() blog.GenerationOptions {
	return blog.GenerationOptions{
		Tone:           c.Tone,
		WordCount:      c.WordCount,
		Keywords:       []string{},
		GenerateImages: blog.Bool(c.GenerateImages),
	}
}
