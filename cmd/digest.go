package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/inboxdigest/internal/config"
	"github.com/teemow/inboxdigest/internal/digest"
	"github.com/teemow/inboxdigest/internal/gmail"
	"github.com/teemow/inboxdigest/internal/google"
	"github.com/teemow/inboxdigest/internal/instrumentation"
	"github.com/teemow/inboxdigest/internal/logging"
	"github.com/teemow/inboxdigest/internal/scorer"
	"github.com/teemow/inboxdigest/internal/slack"
)

type digestOptions struct {
	configPath string
	query      string
	maxEmails  int64
	dryRun     bool
	debug      bool
}

func newDigestCmd() *cobra.Command {
	var opts digestOptions

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Fetch unread Gmail, rate each email, and post the digest to Slack",
		Long: `Fetch unread messages from the inbox, rate each one from 1 (noise) to
5 (urgent) with the Gemini API, and post a single prioritized digest to the
configured Slack incoming webhook.

A run with no unread mail still posts a digest, so a silent channel always
means the run itself failed. Requires GEMINI_API_KEY, SLACK_WEBHOOK_URL,
and a cached Gmail token (see the auth command).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to the YAML config file (optional)")
	cmd.Flags().StringVar(&opts.query, "query", "", "Gmail search query (default: "+config.DefaultQuery+")")
	cmd.Flags().Int64Var(&opts.maxEmails, "max", 0, fmt.Sprintf("Maximum number of emails to fetch (default: %d)", config.DefaultMaxEmails))
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the digest to stdout instead of posting it to Slack")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func runDigest(opts digestOptions) error {
	logger := logging.Setup(opts.debug)

	// A SIGINT/SIGTERM mid-run cancels the in-flight API call and the run
	// fails; nothing is posted to Slack.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.query != "" {
		cfg.Query = opts.query
	}
	if opts.maxEmails > 0 {
		cfg.MaxEmails = opts.maxEmails
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		// Shutdown flushes the collected metrics; use a fresh context so a
		// cancelled run still exports what it recorded.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()
	metrics := provider.Metrics()

	emails, err := fetchEmails(ctx, cfg, metrics, logger)
	if err != nil {
		return err
	}

	items, err := scoreEmails(ctx, cfg, metrics, emails)
	if err != nil {
		return err
	}

	digest.Sort(items)
	text := digest.Render(items, time.Now())

	if opts.dryRun {
		fmt.Println(text)
		return nil
	}

	if err := publishDigest(ctx, cfg, metrics, text); err != nil {
		return err
	}

	logger.Info("digest run complete", logging.Count(len(items)))
	return nil
}

// fetchEmails runs the auth and fetch stages: OAuth token refresh, then the
// Gmail query for unread messages.
func fetchEmails(ctx context.Context, cfg config.Config, metrics *instrumentation.Metrics, logger *slog.Logger) ([]gmail.Email, error) {
	start := time.Now()
	auth := &google.Authenticator{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gmail authentication failed: %w", err)
	}
	metrics.RecordStageDuration(ctx, instrumentation.StageAuth, time.Since(start))

	fetchCtx, span := instrumentation.StartStageSpan(ctx, instrumentation.StageFetch,
		attribute.String(instrumentation.SpanAttrQuery, cfg.Query))
	defer span.End()

	start = time.Now()
	client, err := gmail.NewClient(fetchCtx, httpClient, metrics)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	emails, err := client.FetchUnread(fetchCtx, cfg.Query, cfg.MaxEmails)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	metrics.RecordStageDuration(fetchCtx, instrumentation.StageFetch, time.Since(start))
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrEmailCount, len(emails)))
	instrumentation.SetSpanSuccess(span)

	logger.Info("fetched unread emails",
		logging.Stage(logging.StageFetch),
		logging.Count(len(emails)))

	return emails, nil
}

// scoreEmails runs the score stage and pairs every email with its rating.
func scoreEmails(ctx context.Context, cfg config.Config, metrics *instrumentation.Metrics, emails []gmail.Email) ([]digest.ScoredEmail, error) {
	scoreCtx, span := instrumentation.StartStageSpan(ctx, instrumentation.StageScore,
		attribute.String(instrumentation.SpanAttrModel, cfg.GeminiModel),
		attribute.Int(instrumentation.SpanAttrEmailCount, len(emails)))
	defer span.End()

	start := time.Now()
	s, err := scorer.New(scoreCtx, scorer.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		NeutralPriority:   cfg.NeutralPriority,
		RequestsPerSecond: cfg.ScoreRPS,
	}, metrics)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	scores, err := s.ScoreAll(scoreCtx, emails)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	metrics.RecordStageDuration(scoreCtx, instrumentation.StageScore, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return digest.Combine(emails, scores)
}

// publishDigest runs the publish stage: the single webhook POST.
func publishDigest(ctx context.Context, cfg config.Config, metrics *instrumentation.Metrics, text string) error {
	pubCtx, span := instrumentation.StartStageSpan(ctx, instrumentation.StagePublish)
	defer span.End()

	start := time.Now()
	client, err := slack.NewClient(cfg.SlackWebhookURL, cfg.RequestTimeout, metrics)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return err
	}

	if err := client.Post(pubCtx, text); err != nil {
		instrumentation.SetSpanError(span, err)
		return fmt.Errorf("failed to deliver digest: %w", err)
	}
	metrics.RecordStageDuration(pubCtx, instrumentation.StagePublish, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return nil
}
