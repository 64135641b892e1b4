package gmail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/inboxdigest/internal/instrumentation"
	"github.com/teemow/inboxdigest/internal/logging"
)

// Client wraps the Gmail Users service for the authenticated mailbox.
type Client struct {
	svc     *gmail.UsersService
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// NewClient creates a Gmail client on top of an OAuth-authenticated HTTP
// client, as produced by the google package.
func NewClient(ctx context.Context, httpClient *http.Client, metrics *instrumentation.Metrics) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		logger:  logging.WithStage(slog.Default(), logging.StageFetch),
		metrics: metrics,
	}, nil
}

// FetchUnread lists messages matching the query up to maxResults and
// retrieves each one in full. Messages whose content cannot be decoded are
// skipped with a warning; authentication and quota errors abort the fetch.
func (c *Client) FetchUnread(ctx context.Context, query string, maxResults int64) ([]Email, error) {
	ids, err := c.listMessageIDs(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	emails := make([]Email, 0, len(ids))
	for _, id := range ids {
		msg, err := c.svc.Messages.Get("me", id).Format("full").Context(ctx).Do()
		if err != nil {
			if isSystemic(err) {
				return nil, fmt.Errorf("failed to get message %s: %w", id, err)
			}
			c.metrics.RecordEmailSkipped(ctx)
			c.logger.Warn("skipping message that could not be retrieved",
				slog.String("message_id", id),
				logging.Status(logging.StatusSkipped),
				logging.Err(err))
			continue
		}

		email, err := parseMessage(msg)
		if err != nil {
			c.metrics.RecordEmailSkipped(ctx)
			c.logger.Warn("skipping message that could not be decoded",
				slog.String("message_id", id),
				logging.Status(logging.StatusSkipped),
				logging.Err(err))
			continue
		}
		emails = append(emails, email)
	}

	c.metrics.RecordEmailsFetched(ctx, int64(len(emails)))
	return emails, nil
}

// listMessageIDs lists message ids matching the query with pagination,
// fetching up to maxResults ids across multiple API calls if necessary.
func (c *Client) listMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}

		// Gmail caps the page size at 100.
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").Q(query).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, err
		}

		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" || int64(len(ids)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	return ids, nil
}

// isSystemic reports whether an API error should abort the whole run
// rather than skip a single message. Authentication and quota failures
// will fail every subsequent call too.
func isSystemic(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	}
	return false
}
