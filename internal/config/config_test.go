package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultQuery, cfg.Query)
	assert.Equal(t, int64(DefaultMaxEmails), cfg.MaxEmails)
	assert.Equal(t, DefaultNeutralPriority, cfg.NeutralPriority)
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Contains(t, cfg.CredentialsFile, "inboxdigest")
	assert.Contains(t, cfg.TokenFile, "inboxdigest")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
gemini_model: gemini-test
query: "is:unread"
max_emails: 10
neutral_priority: 2
score_rps: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", cfg.GeminiModel)
	assert.Equal(t, "is:unread", cfg.Query)
	assert.Equal(t, int64(10), cfg.MaxEmails)
	assert.Equal(t, 2, cfg.NeutralPriority)
	assert.Equal(t, 0.5, cfg.ScoreRPS)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_emails: 10\n"), 0600))

	t.Setenv("INBOXDIGEST_MAX_EMAILS", "25")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(25), cfg.MaxEmails)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
}

func TestEnvInvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("INBOXDIGEST_MAX_EMAILS", "not-a-number")
	t.Setenv("INBOXDIGEST_SCORE_RPS", "fast")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMaxEmails), cfg.MaxEmails)
	assert.Equal(t, DefaultScoreRPS, cfg.ScoreRPS)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.GeminiAPIKey = "key"
	valid.SlackWebhookURL = "https://hooks.slack.com/services/T/B/X"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.GeminiAPIKey = "" },
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:    "missing webhook",
			mutate:  func(c *Config) { c.SlackWebhookURL = "" },
			wantErr: "SLACK_WEBHOOK_URL",
		},
		{
			name:    "zero max emails",
			mutate:  func(c *Config) { c.MaxEmails = 0 },
			wantErr: "max_emails",
		},
		{
			name:    "neutral priority too high",
			mutate:  func(c *Config) { c.NeutralPriority = 6 },
			wantErr: "neutral_priority",
		},
		{
			name:    "neutral priority too low",
			mutate:  func(c *Config) { c.NeutralPriority = 0 },
			wantErr: "neutral_priority",
		},
		{
			name:    "zero rps",
			mutate:  func(c *Config) { c.ScoreRPS = 0 },
			wantErr: "score_rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
