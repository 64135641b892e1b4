package gmail

import "time"

// Email is one fetched message, immutable after the fetch stage.
type Email struct {
	// ID is the opaque Gmail message id, unique within the mailbox.
	ID string

	// Sender is the raw From header (display name and address).
	Sender string

	// Subject is the Subject header, "(no subject)" when absent.
	Subject string

	// Snippet is Gmail's short plain-text preview of the message.
	Snippet string

	// Body is the decoded plain-text body, empty when the message has none.
	Body string

	// Received is the message's internal date.
	Received time.Time
}

// Link returns the Gmail deep link for the message.
func (e Email) Link() string {
	return "https://mail.google.com/mail/u/0/#all/" + e.ID
}

// Text returns the content the scorer should judge: the decoded body when
// available, otherwise the snippet.
func (e Email) Text() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Snippet
}
