package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/teemow/inboxdigest/internal/gmail"
	"github.com/teemow/inboxdigest/internal/instrumentation"
	"github.com/teemow/inboxdigest/internal/logging"
)

// Score is the model's judgment of one email.
type Score struct {
	// Priority is the 1-5 rating, 5 being most urgent.
	Priority int `json:"priority"`

	// Reason is a one-sentence rationale for the rating.
	Reason string `json:"reason"`

	// ActionNeeded marks emails the model thinks require a response.
	ActionNeeded bool `json:"action_needed"`
}

// Config holds the settings for the scoring stage.
type Config struct {
	// APIKey authenticates against the Gemini API.
	APIKey string

	// Model is the Gemini model used for scoring.
	Model string

	// NeutralPriority is assigned when the model response cannot be parsed.
	NeutralPriority int

	// RequestsPerSecond paces the sequential scoring calls.
	RequestsPerSecond float64

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// generator abstracts the model call so the scoring logic can be tested
// without the Gemini client.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Scorer rates emails sequentially through the Gemini API.
type Scorer struct {
	gen     generator
	neutral int
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// New creates a Scorer backed by the Gemini API.
func New(ctx context.Context, cfg Config, metrics *instrumentation.Metrics) (*Scorer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("a Gemini model name is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newScorer(&geminiGenerator{client: client, model: strings.TrimSpace(cfg.Model)}, cfg, metrics), nil
}

func newScorer(gen generator, cfg Config, metrics *instrumentation.Metrics) *Scorer {
	neutral := cfg.NeutralPriority
	if neutral < 1 || neutral > 5 {
		neutral = 3
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Scorer{
		gen:     gen,
		neutral: neutral,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logging.WithStage(slog.Default(), logging.StageScore),
		metrics: metrics,
	}
}

// ScoreAll rates every email sequentially, in input order. A response that
// cannot be parsed falls back to the neutral priority with a warning; a
// failed model request aborts the run, since nothing is retried.
func (s *Scorer) ScoreAll(ctx context.Context, emails []gmail.Email) ([]Score, error) {
	scores := make([]Score, 0, len(emails))
	for _, email := range emails {
		score, err := s.scoreEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func (s *Scorer) scoreEmail(ctx context.Context, email gmail.Email) (Score, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Score{}, err
	}

	text, err := s.gen.generate(ctx, buildPrompt(email))
	if err != nil {
		s.metrics.RecordScore(ctx, instrumentation.StatusError)
		return Score{}, fmt.Errorf("scoring request failed: %w", err)
	}

	score, err := parseScore(text)
	if err != nil {
		// The only recovery policy in the pipeline: an unparseable rating
		// becomes the neutral priority and the run continues.
		s.metrics.RecordScoreFallback(ctx)
		s.logger.Warn("could not parse model response, assigning neutral priority",
			slog.Int("neutral_priority", s.neutral),
			logging.SenderDomain(email.Sender),
			logging.Err(err))
		return Score{Priority: s.neutral, Reason: "unparseable model response"}, nil
	}

	s.metrics.RecordScore(ctx, instrumentation.StatusSuccess)
	return score, nil
}
