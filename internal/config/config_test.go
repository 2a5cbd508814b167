package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/blog"
)

func validConfig() *Config {
	return &Config{
		WebhookURL:      "https://n8n.example.com/webhook/blog",
		SessionPrefix:   DefaultSessionPrefix,
		GenerateTimeout: DefaultGenerateTimeout,
		StreamTimeout:   DefaultStreamTimeout,
		ProbeTimeout:    DefaultProbeTimeout,
		SyntheticDelay:  DefaultSyntheticDelay,
		HistoryLimit:    DefaultHistoryLimit,
		StateDir:        "/tmp/state",
		ServeAddr:       DefaultServeAddr,
		Tone:            blog.ToneProfessional,
		WordCount:       1200,
		GenerateImages:  true,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyWebhookURLIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.WebhookURL = ""
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.SyntheticMode())
}

func TestValidate_BadWebhookURL(t *testing.T) {
	for _, bad := range []string{"not a url", "example.com/webhook", "://missing-scheme"} {
		cfg := validConfig()
		cfg.WebhookURL = bad
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidWebhookURL, "url: %q", bad)
	}
}

func TestValidate_Timeouts(t *testing.T) {
	cfg := validConfig()
	cfg.GenerateTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)

	cfg = validConfig()
	cfg.StreamTimeout = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)

	cfg = validConfig()
	cfg.SyntheticDelay = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)

	cfg = validConfig()
	cfg.SyntheticDelay = 0
	assert.NoError(t, cfg.Validate(), "zero synthetic delay is allowed")
}

func TestValidate_Tone(t *testing.T) {
	cfg := validConfig()
	cfg.Tone = "sarcastic"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTone)
}

func TestValidate_WordCountAndHistory(t *testing.T) {
	cfg := validConfig()
	cfg.WordCount = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWordCount)

	cfg = validConfig()
	cfg.HistoryLimit = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidHistoryLimit)
}

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DRAFTFORGE_WEBHOOK_URL", "https://n8n.example.com/webhook/blog")
	t.Setenv("DRAFTFORGE_SESSION_PREFIX", "custom_prefix_")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://n8n.example.com/webhook/blog", cfg.WebhookURL)
	assert.Equal(t, "custom_prefix_", cfg.SessionPrefix)
	assert.Equal(t, DefaultGenerateTimeout, cfg.GenerateTimeout)
	assert.Equal(t, DefaultStreamTimeout, cfg.StreamTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, blog.ToneProfessional, cfg.Tone)
	assert.False(t, cfg.SyntheticMode())
}

func TestDefaultOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Tone = blog.ToneTechnical
	cfg.WordCount = 900

	opts := cfg.DefaultOptions()
	assert.Equal(t, blog.ToneTechnical, opts.Tone)
	assert.Equal(t, 900, opts.WordCount)
	assert.NotNil(t, opts.Keywords)
	require.NotNil(t, opts.GenerateImages)
	assert.True(t, *opts.GenerateImages)
}
