package slack

import "fmt"

// message is the webhook payload. Incoming webhooks accept a single text
// field rendered as mrkdwn.
type message struct {
	Text string `json:"text"`
}

// StatusError represents a webhook delivery rejected by Slack.
type StatusError struct {
	// StatusCode is the HTTP status code Slack returned
	StatusCode int

	// Body is the (truncated) response body, useful for diagnosing
	// rejected payloads
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("slack webhook returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("slack webhook returned status %d", e.StatusCode)
}
