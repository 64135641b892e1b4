package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teemow/inboxdigest/internal/instrumentation"
	"github.com/teemow/inboxdigest/internal/logging"
)

// maxErrorBody bounds how much of a rejection response ends up in the error.
const maxErrorBody = 512

// Client posts digest messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// NewClient creates a webhook client. The webhook URL is the full
// hooks.slack.com URL including its secret path.
func NewClient(webhookURL string, timeout time.Duration, metrics *instrumentation.Metrics) (*Client, error) {
	if strings.TrimSpace(webhookURL) == "" {
		return nil, fmt.Errorf("webhook URL cannot be empty")
	}

	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid webhook URL %q", webhookURL)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.WithStage(slog.Default(), logging.StagePublish),
		metrics:    metrics,
	}, nil
}

// Post delivers the digest text. Exactly one attempt is made; a failed
// delivery is reported to the caller rather than retried, since a duplicate
// digest is worse than a missing one.
func (c *Client) Post(ctx context.Context, text string) error {
	payload, err := json.Marshal(message{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.RecordWebhookPost(ctx, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	c.logger.Info("digest posted",
		logging.Status(logging.StatusSuccess),
		slog.Int("bytes", len(payload)))

	return nil
}
