package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the digest pipeline. The fetch cap and neutral
// priority are deliberate choices, not API constraints.
const (
	DefaultQuery           = "in:inbox category:primary is:unread"
	DefaultMaxEmails       = 50
	DefaultNeutralPriority = 3
	DefaultScoreRPS        = 1.0
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultRequestTimeout  = 30 * time.Second
)

// Config holds all settings for a digest run. Values are resolved in
// order: defaults, then the optional YAML file, then environment
// variables. Flags on individual commands override the result.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// GeminiModel is the model used for scoring.
	GeminiModel string `yaml:"gemini_model"`

	// SlackWebhookURL is the incoming-webhook URL the digest is posted to.
	SlackWebhookURL string `yaml:"slack_webhook_url"`

	// CredentialsFile is the path to the Google OAuth client secret JSON.
	CredentialsFile string `yaml:"credentials_file"`

	// TokenFile is the path to the cached user token.
	TokenFile string `yaml:"token_file"`

	// Query is the Gmail search query selecting messages for the digest.
	Query string `yaml:"query"`

	// MaxEmails caps how many messages a single run fetches.
	MaxEmails int64 `yaml:"max_emails"`

	// NeutralPriority is assigned when the model response cannot be parsed.
	NeutralPriority int `yaml:"neutral_priority"`

	// ScoreRPS paces the sequential scoring calls (requests per second).
	ScoreRPS float64 `yaml:"score_rps"`

	// RequestTimeout bounds each outbound HTTP call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns a Config populated with defaults and the conventional
// file locations under the user's config and cache directories.
func Default() Config {
	return Config{
		GeminiModel:     DefaultGeminiModel,
		CredentialsFile: filepath.Join(userConfigDir(), "inboxdigest", "credentials.json"),
		TokenFile:       filepath.Join(userCacheDir(), "inboxdigest", "token.json"),
		Query:           DefaultQuery,
		MaxEmails:       DefaultMaxEmails,
		NeutralPriority: DefaultNeutralPriority,
		ScoreRPS:        DefaultScoreRPS,
		RequestTimeout:  DefaultRequestTimeout,
	}
}

// Load resolves the configuration from defaults, the optional YAML file at
// path, and environment variables. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. Env vars win
// over file values so deployments can override a checked-in file.
func (c *Config) applyEnv() {
	c.GeminiAPIKey = getEnvOrDefault("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnvOrDefault("GEMINI_MODEL", c.GeminiModel)
	c.SlackWebhookURL = getEnvOrDefault("SLACK_WEBHOOK_URL", c.SlackWebhookURL)
	c.CredentialsFile = getEnvOrDefault("INBOXDIGEST_CREDENTIALS_FILE", c.CredentialsFile)
	c.TokenFile = getEnvOrDefault("INBOXDIGEST_TOKEN_FILE", c.TokenFile)
	c.Query = getEnvOrDefault("INBOXDIGEST_QUERY", c.Query)
	c.MaxEmails = getEnvInt64OrDefault("INBOXDIGEST_MAX_EMAILS", c.MaxEmails)
	c.NeutralPriority = getEnvIntOrDefault("INBOXDIGEST_NEUTRAL_PRIORITY", c.NeutralPriority)
	c.ScoreRPS = getEnvFloatOrDefault("INBOXDIGEST_SCORE_RPS", c.ScoreRPS)
}

// Validate checks that the configuration can drive a full digest run.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.SlackWebhookURL == "" {
		return fmt.Errorf("SLACK_WEBHOOK_URL is required")
	}
	if c.MaxEmails <= 0 {
		return fmt.Errorf("max_emails must be positive, got %d", c.MaxEmails)
	}
	if c.NeutralPriority < 1 || c.NeutralPriority > 5 {
		return fmt.Errorf("neutral_priority must be between 1 and 5, got %d", c.NeutralPriority)
	}
	if c.ScoreRPS <= 0 {
		return fmt.Errorf("score_rps must be positive, got %f", c.ScoreRPS)
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the int value of an environment variable or a default value.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvInt64OrDefault returns the int64 value of an environment variable or a default value.
func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvFloatOrDefault returns the float64 value of an environment variable or a default value.
func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(homeDir(), ".config")
}

func userCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	// Windows fallback
	return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
}
