package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teemow/inboxdigest/internal/gmail"
	"github.com/teemow/inboxdigest/internal/scorer"
)

// ScoredEmail pairs an email with its rating.
type ScoredEmail struct {
	gmail.Email
	Score scorer.Score
}

// priorityEmoji maps each priority level to its marker in the digest.
var priorityEmoji = map[int]string{
	5: "🔴",
	4: "🟠",
	3: "🔵",
	2: "🟢",
	1: "⚪",
}

// Combine zips emails with their scores. Both slices come from the same
// fetch and must be equally long.
func Combine(emails []gmail.Email, scores []scorer.Score) ([]ScoredEmail, error) {
	if len(emails) != len(scores) {
		return nil, fmt.Errorf("got %d scores for %d emails", len(scores), len(emails))
	}

	items := make([]ScoredEmail, len(emails))
	for i := range emails {
		items[i] = ScoredEmail{Email: emails[i], Score: scores[i]}
	}
	return items, nil
}

// Sort orders items by descending priority. The sort is stable, so emails
// with equal priority keep their mailbox order.
func Sort(items []ScoredEmail) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score.Priority > items[j].Score.Priority
	})
}

// Render produces the Slack mrkdwn digest text. An empty item list still
// renders a digest, so a silent webhook never means "nothing unread".
func Render(items []ScoredEmail, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*📬 Inbox digest - %s*\n", now.Format("Mon, 02 Jan 2006"))

	if len(items) == 0 {
		b.WriteString("\nNo unread emails. 🎉")
		return b.String()
	}

	fmt.Fprintf(&b, "_%d unread, highest priority first_\n", len(items))

	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(renderItem(item))
	}

	return b.String()
}

// renderItem formats one digest entry as two lines: the linked subject with
// its priority marker, then the sender and the model's reason.
func renderItem(item ScoredEmail) string {
	var b strings.Builder

	emoji, ok := priorityEmoji[item.Score.Priority]
	if !ok {
		emoji = priorityEmoji[3]
	}

	fmt.Fprintf(&b, "%s *P%d* <%s|%s>", emoji, item.Score.Priority, item.Link(), escapeText(item.Subject))
	if item.Score.ActionNeeded {
		b.WriteString(" ⚡ _action needed_")
	}
	fmt.Fprintf(&b, "\n        from %s: _%s_", escapeText(item.Sender), escapeText(item.Score.Reason))

	return b.String()
}

// escapeText escapes the characters Slack mrkdwn treats specially in text.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
