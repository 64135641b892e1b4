package scorer

import (
	"fmt"
	"strings"

	"github.com/teemow/inboxdigest/internal/gmail"
)

// maxBodyChars bounds the body excerpt sent to the model. Newsletters
// routinely run to tens of kilobytes; the rating never needs that much.
const maxBodyChars = 2000

const promptHeader = `You are an email triage assistant. Rate the priority of the email below
on a scale from 1 to 5:

  5 = urgent, needs attention today (deadlines, incidents, direct requests from people)
  4 = important, should be handled this week
  3 = useful, worth reading when there is time
  2 = low value, probably skippable
  1 = noise (bulk mail, promotions, automated notifications with no action)

Respond with a single JSON object with the keys "priority" (integer 1-5),
"reason" (one short sentence), and "action_needed" (boolean).`

// buildPrompt assembles the triage prompt for a single email. The prompt is
// fixed; only the email fields vary between calls.
func buildPrompt(email gmail.Email) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "From: %s\n", email.Sender)
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "Body:\n%s\n", truncate(email.Text(), maxBodyChars))
	return b.String()
}

// truncate cuts s to at most n runes, marking the cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + " [...]"
}
