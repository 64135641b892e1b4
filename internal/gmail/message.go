package gmail

import (
	"encoding/base64"
	"fmt"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

// parseMessage converts an API message into an Email. A message whose body
// is present but cannot be decoded is rejected so the caller can skip it.
func parseMessage(msg *gmail.Message) (Email, error) {
	body, err := extractBody(msg)
	if err != nil {
		return Email{}, err
	}

	return Email{
		ID:       msg.Id,
		Sender:   headerValue(msg, "From", "(unknown)"),
		Subject:  headerValue(msg, "Subject", "(no subject)"),
		Snippet:  msg.Snippet,
		Body:     body,
		Received: time.UnixMilli(msg.InternalDate),
	}, nil
}

// headerValue extracts a header value from a message, returning the
// fallback when the header is absent.
func headerValue(msg *gmail.Message, header, fallback string) string {
	if msg.Payload == nil {
		return fallback
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return fallback
}

// extractBody returns the decoded plain-text body of a message, falling
// back to the HTML body when no plain-text part exists. A message without
// any body yields an empty string, not an error.
func extractBody(msg *gmail.Message) (string, error) {
	if msg.Payload == nil {
		return "", nil
	}

	data := findBodyData(msg.Payload, "text/plain")
	if data == "" {
		data = findBodyData(msg.Payload, "text/html")
	}
	if data == "" {
		return "", nil
	}

	decoded, err := decodeBody(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return decoded, nil
}

// findBodyData locates the base64 body data for the given MIME type,
// checking the top-level payload first and then walking nested parts.
func findBodyData(payload *gmail.MessagePart, mimeType string) string {
	if payload.MimeType == mimeType && payload.Body != nil && payload.Body.Data != "" {
		return payload.Body.Data
	}

	var data string
	walkParts(payload, func(part *gmail.MessagePart) {
		if data == "" && part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
			data = part.Body.Data
		}
	})
	return data
}

// decodeBody decodes base64url body data (Gmail uses RFC 4648 base64url),
// falling back to standard base64 for odd producers.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}

// walkParts recursively walks through message parts.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
